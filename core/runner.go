package core

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"devtasks/logger"
)

// ToolResult captures one invocation of a wrapped external command.
// The wrapped tools are opaque: they are judged by exit code only, and
// their full output is mirrored to the tool log for later review.
type ToolResult struct {
	Tool     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// RunTool executes argv[0] with the remaining argv as arguments, in the
// given working directory. A non-zero exit is not an error here; it is
// reported via ExitCode so callers decide how to surface it. An error is
// returned only when the command could not be run at all.
func RunTool(ctx context.Context, dir string, argv []string) (ToolResult, error) {
	if len(argv) == 0 {
		return ToolResult{}, errors.New("empty tool command")
	}
	result := ToolResult{Tool: argv[0], Args: argv[1:]}

	var outBuffer, errBuffer bytes.Buffer
	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	command.Dir = dir
	command.Stdout = &outBuffer
	command.Stderr = &errBuffer

	logger.Info("Running tool: %s", strings.Join(argv, " "))
	started := time.Now()
	runErr := command.Run()
	result.Duration = time.Since(started)
	result.Stdout = outBuffer.String()
	result.Stderr = errBuffer.String()

	mirrorToToolLog(result.Tool, &outBuffer)
	if result.Stderr != "" {
		logger.Warn("Tool %s stderr: %s", result.Tool, strings.TrimSpace(result.Stderr))
		mirrorToToolLog(result.Tool, bytes.NewBufferString(result.Stderr))
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			return result, fmt.Errorf("tool %s cancelled: %w", result.Tool, runErr)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logger.Info("Tool %s exited with code %d after %s", result.Tool, result.ExitCode, result.Duration.Round(time.Millisecond))
			return result, nil
		}
		logger.Error("Tool %s failed to run: %v", result.Tool, runErr)
		return result, fmt.Errorf("running %s: %w", result.Tool, runErr)
	}

	logger.Info("Tool %s completed in %s", result.Tool, result.Duration.Round(time.Millisecond))
	return result, nil
}

func mirrorToToolLog(tool string, buffer *bytes.Buffer) {
	scanner := bufio.NewScanner(buffer)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logger.Tool(tool, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Tool %s output mirror truncated: %v", tool, err)
	}
}
