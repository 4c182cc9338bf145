package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTestEventsCountsOutcomes(t *testing.T) {
	stream := `{"Action":"run","Package":"devtasks/tags","Test":"TestA"}
{"Action":"output","Package":"devtasks/tags","Test":"TestA","Output":"=== RUN TestA\n"}
{"Action":"pass","Package":"devtasks/tags","Test":"TestA","Elapsed":0.01}
{"Action":"run","Package":"devtasks/tags","Test":"TestB"}
{"Action":"fail","Package":"devtasks/tags","Test":"TestB","Elapsed":0.02}
{"Action":"skip","Package":"devtasks/core","Test":"TestC","Elapsed":0}
{"Action":"pass","Package":"devtasks/tags","Elapsed":0.05}
`
	summary := ParseTestEvents(stream)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, []string{"devtasks/tags.TestB"}, summary.FailedTests)
	assert.Equal(t, "1 passed, 1 failed, 1 skipped", summary.String())
}

func TestParseTestEventsIgnoresNonJSONLines(t *testing.T) {
	stream := "go: downloading github.com/stretchr/testify v1.11.1\n" +
		`{"Action":"pass","Package":"devtasks/tags","Test":"TestA"}` + "\n" +
		"FAIL\n"
	summary := ParseTestEvents(stream)
	assert.Equal(t, 1, summary.Passed)
	assert.Zero(t, summary.Failed)
}

func TestParseTestEventsEmptyStream(t *testing.T) {
	summary := ParseTestEvents("")
	assert.Zero(t, summary.Passed)
	assert.Zero(t, summary.Failed)
	assert.Zero(t, summary.Skipped)
	assert.Empty(t, summary.FailedTests)
}
