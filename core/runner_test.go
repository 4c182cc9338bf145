package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devtasks/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunToolCapturesOutputAndExitCode(t *testing.T) {
	result, err := RunTool(context.Background(), t.TempDir(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"})
	require.NoError(t, err, "a non-zero exit is not a run error")
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.Equal(t, "sh", result.Tool)
}

func TestRunToolSuccess(t *testing.T) {
	result, err := RunTool(context.Background(), t.TempDir(), []string{"sh", "-c", "echo done"})
	require.NoError(t, err)
	assert.Zero(t, result.ExitCode)
	assert.Equal(t, "done\n", result.Stdout)
}

func TestRunToolEmptyCommand(t *testing.T) {
	_, err := RunTool(context.Background(), ".", nil)
	require.Error(t, err)
}

func TestRunToolMissingBinary(t *testing.T) {
	_, err := RunTool(context.Background(), ".", []string{"definitely-not-a-real-binary-4242"})
	require.Error(t, err)
}

func TestMirrorToToolLogWarnsOnOversizedLine(t *testing.T) {
	dir := t.TempDir()
	appLog := filepath.Join(dir, "app.log")
	require.NoError(t, logger.InitGlobalLoggers(appLog, filepath.Join(dir, "tools.log"), "INFO"))

	var buffer bytes.Buffer
	// A single line over the scanner's 1 MiB cap.
	buffer.WriteString(strings.Repeat("x", 2*1024*1024))
	mirrorToToolLog("noisy", &buffer)
	logger.CloseLogFiles()

	content, err := os.ReadFile(appLog)
	require.NoError(t, err)
	assert.Contains(t, string(content), "output mirror truncated")
}
