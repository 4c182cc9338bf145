package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger   *log.Logger
	ToolLogger  *log.Logger
	ErrorLogger *log.Logger

	logLevel    string
	appLogFile  *os.File
	toolLogFile *os.File
	initialized bool
)

// InitGlobalLoggers opens the application log and the tool-output log.
// The tool log captures stdout/stderr of wrapped external commands so
// the terminal stays readable while full output is kept for review.
func InitGlobalLoggers(appLogPath, toolLogPath, level string) error {
	if initialized && appLogFile != nil && toolLogFile != nil && strings.ToUpper(level) == logLevel {
		return nil
	}
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if toolLogFile != nil {
		toolLogFile.Close()
		toolLogFile = nil
	}

	logLevel = strings.ToUpper(level)
	if logLevel == "" {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	actualAppLogPath := appLogPath
	appLogDir := filepath.Dir(appLogPath)
	var appLogWriter io.Writer = io.Discard
	if err := os.MkdirAll(appLogDir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create app log directory %s: %v. App logs (Info/Debug) will be discarded.", appLogDir, err)
		actualAppLogPath = "(discarded)"
	} else {
		var errApp error
		appLogFile, errApp = os.OpenFile(appLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if errApp != nil {
			ErrorLogger.Printf("Failed to open app log file %s: %v. App logs (Info/Debug) will be discarded.", appLogPath, errApp)
			actualAppLogPath = "(discarded)"
		} else {
			appLogWriter = appLogFile
		}
	}
	AppLogger = log.New(appLogWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)

	actualToolLogPath := toolLogPath
	toolLogDir := filepath.Dir(toolLogPath)
	var toolLogWriter io.Writer = io.Discard
	if err := os.MkdirAll(toolLogDir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create tool log directory %s: %v. Tool output will be discarded.", toolLogDir, err)
		actualToolLogPath = "(discarded)"
	} else {
		var errTool error
		toolLogFile, errTool = os.OpenFile(toolLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if errTool != nil {
			ErrorLogger.Printf("Failed to open tool log file %s: %v. Tool output will be discarded.", toolLogPath, errTool)
			actualToolLogPath = "(discarded)"
		} else {
			toolLogWriter = toolLogFile
		}
	}
	ToolLogger = log.New(toolLogWriter, "TOOL: ", log.Ldate|log.Ltime)

	if !initialized {
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, actualAppLogPath)
		ToolLogger.Printf("Tool logger initialized. Output file: %s", actualToolLogPath)
	}
	initialized = true
	return nil
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && (logLevel == "INFO" || logLevel == "DEBUG") {
		AppLogger.Printf(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && logLevel == "DEBUG" {
		AppLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && (logLevel == "WARN" || logLevel == "INFO" || logLevel == "DEBUG") {
		AppLogger.Printf(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Print(message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Print(message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

// Tool writes a line of captured external-tool output to the tool log.
func Tool(toolName, line string) {
	if ToolLogger != nil {
		ToolLogger.Printf("[%s] %s", toolName, line)
	}
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil // Prevent double close
	}
	if toolLogFile != nil {
		toolLogFile.Close()
		toolLogFile = nil // Prevent double close
	}
	initialized = false // Allow re-initialization if needed (e.g. tests)
}
