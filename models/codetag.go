package models

// CodeTag is a single matched marker occurrence with its location and
// the comment text that followed the marker on the same line.
type CodeTag struct {
	File   string `json:"file"`           // Path of the file containing the marker, relative to the project root.
	Line   int    `json:"line"`           // 1-indexed line number of the match.
	Marker string `json:"marker"`         // The configured marker that matched.
	Text   string `json:"text,omitempty"` // Trailing comment text after the marker; may be empty.
}

// FileTags groups the occurrences found in one source file.
type FileTags struct {
	File string    `json:"file"`
	Tags []CodeTag `json:"tags"`
}

// FileFailure records a source file that could not be read during a scan.
// Failures are accumulated and reported alongside results, never dropped.
type FileFailure struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

// ScanSummary is the per-invocation result handed back to the caller:
// per-marker counts plus the files that were scanned or skipped.
type ScanSummary struct {
	FilesScanned int            `json:"files_scanned"`
	Counts       map[string]int `json:"counts"`
	Total        int            `json:"total"`
	Failures     []FileFailure  `json:"failures,omitempty"`
}
