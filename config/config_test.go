package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfiguration() Configuration {
	var c Configuration
	c.Tags.Markers = []string{"FIXME", "TODO"}
	c.Tags.Output = "docs/CODE_TAG_SUMMARY.md"
	c.Tools.Test = []string{"go", "test", "./..."}
	c.Tools.Lint = []string{"golangci-lint", "run"}
	c.Tools.DocBuild = []string{"mkdocs", "build"}
	return c
}

func TestValidateAcceptsCompleteConfiguration(t *testing.T) {
	require.NoError(t, validConfiguration().Validate())
}

func TestValidateRejectsEmptyMarkerSet(t *testing.T) {
	c := validConfiguration()
	c.Tags.Markers = nil
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tags.markers")
}

func TestValidateRejectsBlankMarker(t *testing.T) {
	c := validConfiguration()
	c.Tags.Markers = []string{"TODO", " "}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsEmptyOutput(t *testing.T) {
	c := validConfiguration()
	c.Tags.Output = ""
	assert.Error(t, c.Validate())
}

func TestValidateRejectsMissingToolCommands(t *testing.T) {
	c := validConfiguration()
	c.Tools.Lint = nil
	assert.Error(t, c.Validate())
}

func TestExpandTildePassthrough(t *testing.T) {
	path, err := expandTilde("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", path)
}

func TestExpandTildeHome(t *testing.T) {
	t.Setenv("HOME", "/home/example")
	path, err := expandTilde("~/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/home/example/config.yaml", path)
}
