package tags

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"devtasks/logger"
)

// FindOptions controls source-file enumeration. The enumeration policy
// lives in project configuration; the collector core only ever sees the
// resulting path list.
type FindOptions struct {
	Root        string   // Project root to walk.
	Suffixes    []string // File suffixes to include (e.g. ".go", ".md").
	ExcludeDirs []string // Directory names skipped wherever they appear (e.g. "vendor").
	OutputPath  string   // The report file itself, always excluded.
}

// FindSourceFiles walks the project root and returns the files to scan,
// in deterministic lexical order. Dot-directories and configured
// exclusions are skipped entirely.
func FindSourceFiles(opts FindOptions) ([]string, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	absOut, _ := filepath.Abs(opts.OutputPath)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || isExcludedDir(name, opts.ExcludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if absPath, _ := filepath.Abs(path); absPath == absOut {
			return nil
		}
		if !hasSuffix(name, opts.Suffixes) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking project root %s: %w", root, err)
	}
	logger.Info("Found %d files to scan under %s", len(paths), root)
	return paths, nil
}

func isExcludedDir(name string, excluded []string) bool {
	for _, dir := range excluded {
		if name == dir {
			return true
		}
	}
	return false
}

func hasSuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
