package models

import "time"

// MarkerCount is the number of occurrences recorded for one marker
// during a single collector run.
type MarkerCount struct {
	Marker string `json:"marker"`
	Count  int    `json:"count"`
}

// TagRun is one recorded invocation of the tag collector.
type TagRun struct {
	ID           string        `json:"id"`
	RanAt        time.Time     `json:"ran_at"`
	FilesScanned int           `json:"files_scanned"`
	FilesFailed  int           `json:"files_failed"`
	TotalTags    int           `json:"total_tags"`
	Counts       []MarkerCount `json:"counts,omitempty"` // Per-marker counts (populated for GET by ID).
}
