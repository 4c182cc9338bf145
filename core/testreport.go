package core

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// TestSummary aggregates the outcome events of a `go test -json` run.
type TestSummary struct {
	Passed      int
	Failed      int
	Skipped     int
	FailedTests []string
}

// ParseTestEvents scans a `go test -json` event stream and tallies
// per-test outcomes. Package-level events (no Test field) and non-JSON
// lines interleaved by the toolchain are ignored.
func ParseTestEvents(output string) TestSummary {
	var summary TestSummary
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !gjson.Valid(line) {
			continue
		}
		testName := gjson.Get(line, "Test").String()
		if testName == "" {
			continue
		}
		switch gjson.Get(line, "Action").String() {
		case "pass":
			summary.Passed++
		case "fail":
			summary.Failed++
			pkg := gjson.Get(line, "Package").String()
			if pkg != "" {
				summary.FailedTests = append(summary.FailedTests, pkg+"."+testName)
			} else {
				summary.FailedTests = append(summary.FailedTests, testName)
			}
		case "skip":
			summary.Skipped++
		}
	}
	return summary
}

// String renders the one-line summary printed after a test run.
func (s TestSummary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped", s.Passed, s.Failed, s.Skipped)
}
