package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"devtasks/logger"
	"devtasks/models"
)

// Sentinel errors for the fatal failure modes of a collector run.
// Per-file read failures are not fatal; they are accumulated on the
// ScanSummary and reported alongside the results.
var (
	ErrInvalidConfiguration = errors.New("invalid collector configuration")
	ErrAllFilesFailed       = errors.New("no input files could be read")
	ErrOutputWrite          = errors.New("failed to write tag report")
)

// SkipDirective marks a file that must be excluded from tag collection.
// It is honored only within the first few lines so the generated report
// (which embeds the directive) is never re-collected into itself.
const SkipDirective = ":skip_tags:"

// skipDirectiveLines is how many leading lines are checked for SkipDirective.
const skipDirectiveLines = 4

// Config holds the already-validated primitive inputs of a collector run.
type Config struct {
	Markers    []string // Ordered, case-sensitive marker tokens (e.g. "FIXME", "TODO"). Order controls report sections.
	OutputPath string   // Destination of the rendered Markdown report.
}

// Validate checks the configuration before any scanning happens.
func (c Config) Validate() error {
	if len(c.Markers) == 0 {
		return fmt.Errorf("%w: marker set is empty", ErrInvalidConfiguration)
	}
	for _, marker := range c.Markers {
		if strings.TrimSpace(marker) == "" {
			return fmt.Errorf("%w: blank marker in marker set", ErrInvalidConfiguration)
		}
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfiguration)
	}
	return nil
}

// Collector scans source files for configured marker tokens and renders
// an aggregated Markdown report. One instance per invocation; it holds
// no state between runs.
type Collector struct {
	cfg Config
}

// NewCollector validates cfg and returns a ready collector.
func NewCollector(cfg Config) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Collector{cfg: cfg}, nil
}

// Collect runs the full scan -> aggregate -> render -> write pipeline
// over the given file paths. The report is written atomically: either
// the previous report survives untouched or the new one replaces it in
// full. The returned summary carries per-marker counts and any per-file
// read failures for the caller to report on.
func (c *Collector) Collect(paths []string) (models.ScanSummary, error) {
	outDir := filepath.Dir(c.cfg.OutputPath)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return models.ScanSummary{}, fmt.Errorf("%w: output directory %s not writable: %v", ErrInvalidConfiguration, outDir, err)
	}

	fileTags, failures := c.ScanFiles(paths)

	scanned := len(paths) - len(failures)
	if scanned == 0 {
		return models.ScanSummary{Failures: failures}, fmt.Errorf("%w: %d of %d files failed", ErrAllFilesFailed, len(failures), len(paths))
	}

	report := c.Render(fileTags)
	if err := writeAtomic(c.cfg.OutputPath, report); err != nil {
		return models.ScanSummary{Failures: failures}, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	summary := models.ScanSummary{
		FilesScanned: scanned,
		Counts:       map[string]int{},
		Failures:     failures,
	}
	for _, ft := range fileTags {
		for _, tag := range ft.Tags {
			summary.Counts[tag.Marker]++
			summary.Total++
		}
	}
	logger.Info("Tag collection complete: %d occurrences across %d files (%d unreadable)", summary.Total, scanned, len(failures))
	return summary, nil
}

// ScanFiles reads each path and collects marker occurrences. Unreadable
// files are recorded as failures and skipped; scanning continues with
// the remaining files.
func (c *Collector) ScanFiles(paths []string) ([]models.FileTags, []models.FileFailure) {
	var results []models.FileTags
	var failures []models.FileFailure
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Could not read %s: %v", path, err)
			failures = append(failures, models.FileFailure{File: path, Err: err})
			continue
		}
		lines := strings.Split(string(content), "\n")
		if hasSkipDirective(lines) {
			logger.Debug("Skipping %s (%s directive)", path, SkipDirective)
			continue
		}
		found := searchLines(filepath.ToSlash(path), lines, c.cfg.Markers)
		if len(found) > 0 {
			results = append(results, models.FileTags{File: filepath.ToSlash(path), Tags: found})
		}
	}
	return results, failures
}

func hasSkipDirective(lines []string) bool {
	for i, line := range lines {
		if i >= skipDirectiveLines {
			break
		}
		if strings.Contains(line, SkipDirective) {
			return true
		}
	}
	return false
}

// searchLines scans every line of one file. A line may yield one
// occurrence per distinct marker, ordered left to right by the marker's
// first appearance on that line. Lines are 1-indexed for reporting.
func searchLines(path string, lines []string, markers []string) []models.CodeTag {
	var found []models.CodeTag
	for i, line := range lines {
		type hit struct {
			idx    int
			marker string
		}
		var hits []hit
		for _, marker := range markers {
			if idx := indexToken(line, marker); idx >= 0 {
				hits = append(hits, hit{idx: idx, marker: marker})
			}
		}
		sort.SliceStable(hits, func(a, b int) bool { return hits[a].idx < hits[b].idx })
		for _, h := range hits {
			found = append(found, models.CodeTag{
				File:   path,
				Line:   i + 1,
				Marker: h.marker,
				Text:   trailingText(line, h.idx+len(h.marker)),
			})
		}
	}
	return found
}

// indexToken returns the index of the first whole-token occurrence of
// marker in line, or -1. A token boundary is a non-alphanumeric rune or
// the start/end of the line, so "TODOS" never matches marker "TODO" and
// neither does "TODOé".
func indexToken(line, marker string) int {
	for start := 0; start <= len(line)-len(marker); {
		i := strings.Index(line[start:], marker)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(marker)
		left, _ := utf8.DecodeLastRuneInString(line[:i])
		right, _ := utf8.DecodeRuneInString(line[end:])
		leftOK := i == 0 || !isAlphanumeric(left)
		rightOK := end == len(line) || !isAlphanumeric(right)
		if leftOK && rightOK {
			return i
		}
		start = i + 1
	}
	return -1
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trailingText extracts the comment text after a marker, trimmed of
// leading punctuation and surrounding whitespace. May be empty.
func trailingText(line string, from int) string {
	rest := strings.TrimLeftFunc(line[from:], func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.TrimSpace(rest)
}

// Render produces the deterministic Markdown report body: one section
// per configured marker (in configured order), each a table of
// occurrences sorted by file path then line number. Byte-identical
// output for identical input.
func (c *Collector) Render(fileTags []models.FileTags) string {
	grouped := make(map[string][]models.CodeTag, len(c.cfg.Markers))
	for _, ft := range fileTags {
		for _, tag := range ft.Tags {
			grouped[tag.Marker] = append(grouped[tag.Marker], tag)
		}
	}

	var b strings.Builder
	b.WriteString("# Code Tag Summary\n\n")
	b.WriteString("<!-- " + SkipDirective + " -->\n")

	var counts []string
	for _, marker := range c.cfg.Markers {
		tags := grouped[marker]
		if len(tags) == 0 {
			continue
		}
		sort.SliceStable(tags, func(a, b int) bool {
			if tags[a].File != tags[b].File {
				return tags[a].File < tags[b].File
			}
			return tags[a].Line < tags[b].Line
		})
		b.WriteString("\n## " + marker + "\n\n")
		b.WriteString("| File | Line | Comment |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, tag := range tags {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", tag.File, tag.Line, escapeCell(tag.Text))
		}
		counts = append(counts, fmt.Sprintf("%s (%d)", marker, len(tags)))
	}

	if len(counts) == 0 {
		b.WriteString("\nNo code tags found.\n")
	} else {
		b.WriteString("\nFound code tags for " + strings.Join(counts, ", ") + "\n")
	}
	return b.String()
}

func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", "\\|")
}

// writeAtomic replaces path with content via a temp file and rename, so
// a failed write never leaves a half-written report behind.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tag-summary-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp report %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp report %s: %w", tmpName, err)
	}
	// CreateTemp opens 0600; the published report is a shared artifact.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on temp report %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing report %s: %w", path, err)
	}
	return nil
}
