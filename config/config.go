package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devtasks/logger"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir   string
	LogPathApp  string
	LogPathTool string
	DBPath      string
	LogLevel    string
}

type Configuration struct {
	Project struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"project"`
	Tags struct {
		Markers         []string `mapstructure:"markers"`
		Output          string   `mapstructure:"output"`
		IncludeSuffixes []string `mapstructure:"include_suffixes"`
		ExcludeDirs     []string `mapstructure:"exclude_dirs"`
	} `mapstructure:"tags"`
	Tools struct {
		Test     []string `mapstructure:"test"`
		TestJSON []string `mapstructure:"test_json"` // Variant emitting `go test -json` events for summary parsing.
		Lint     []string `mapstructure:"lint"`
		DocBuild []string `mapstructure:"doc_build"`
	} `mapstructure:"tools"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port    string `mapstructure:"port"`
		DocsDir string `mapstructure:"docs_dir"`
	} `mapstructure:"server"`
	Logging struct {
		Level    string `mapstructure:"level"`
		AppPath  string `mapstructure:"app_path"`
		ToolPath string `mapstructure:"tool_path"`
	} `mapstructure:"logging"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := expandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "devtasks")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathTool = filepath.Join(logDir, "tools.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "devtasks.db")
	paths.LogLevel = "INFO"
	return paths
}

func Init(cfgFile string, flagAppLogPath, flagToolLogPath, flagLogLevel string) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("project.root", ".")
	v.SetDefault("tags.markers", []string{"FIXME", "TODO", "PLANNED", "HACK", "REVIEW", "DEBUG"})
	v.SetDefault("tags.output", filepath.Join("docs", "CODE_TAG_SUMMARY.md"))
	v.SetDefault("tags.include_suffixes", []string{".go", ".md"})
	v.SetDefault("tags.exclude_dirs", []string{"vendor", "node_modules", "site", "dist"})
	v.SetDefault("tools.test", []string{"go", "test", "./..."})
	v.SetDefault("tools.test_json", []string{"go", "test", "-json", "./..."})
	v.SetDefault("tools.lint", []string{"golangci-lint", "run"})
	v.SetDefault("tools.doc_build", []string{"mkdocs", "build"})
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8787")
	v.SetDefault("server.docs_dir", "site")
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("logging.app_path", defaults.LogPathApp)
	v.SetDefault("logging.tool_path", defaults.LogPathTool)

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		// Project-local config wins over the user-level one.
		v.AddConfigPath(".")
		v.AddConfigPath(defaults.ConfigDir)
		v.SetConfigName("devtasks")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("DEVTASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configUsedMsg := "Using default/environment configuration."
	readErr := v.ReadInConfig()
	if readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Error unmarshalling configuration: %v\n", err)
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Apply flag overrides
	if flagAppLogPath != "" {
		expandedPath, err := expandTilde(flagAppLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --app-log path '%s': %v. Using original path.\n", flagAppLogPath, err)
			AppConfig.Logging.AppPath = flagAppLogPath
		} else {
			AppConfig.Logging.AppPath = expandedPath
		}
	}
	if flagToolLogPath != "" {
		expandedPath, err := expandTilde(flagToolLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --tool-log path '%s': %v. Using original path.\n", flagToolLogPath, err)
			AppConfig.Logging.ToolPath = flagToolLogPath
		} else {
			AppConfig.Logging.ToolPath = expandedPath
		}
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	// Expand tilde for paths read from config that might contain it
	var err error
	AppConfig.Database.Path, err = expandTilde(AppConfig.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in database.path '%s': %v.\n", AppConfig.Database.Path, err)
	}
	AppConfig.Project.Root, err = expandTilde(AppConfig.Project.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in project.root '%s': %v.\n", AppConfig.Project.Root, err)
	}

	if err := os.MkdirAll(defaults.ConfigDir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create main config directory %s: %v\n", defaults.ConfigDir, err)
	}

	// Initialize/Re-initialize loggers
	if err := logger.InitGlobalLoggers(AppConfig.Logging.AppPath, AppConfig.Logging.ToolPath, AppConfig.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info(configUsedMsg)
	if readErr != nil && cfgFile != "" {
		logger.Error("Error occurred reading specified config file '%s': %v", cfgFile, readErr)
	}

	if err := AppConfig.Validate(); err != nil {
		return err
	}

	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}

// Validate checks the loaded configuration once at startup so malformed
// input fails fast instead of surfacing mid-run.
func (c Configuration) Validate() error {
	if len(c.Tags.Markers) == 0 {
		return fmt.Errorf("invalid configuration: tags.markers must not be empty")
	}
	for _, marker := range c.Tags.Markers {
		if strings.TrimSpace(marker) == "" {
			return fmt.Errorf("invalid configuration: tags.markers contains a blank marker")
		}
	}
	if strings.TrimSpace(c.Tags.Output) == "" {
		return fmt.Errorf("invalid configuration: tags.output must not be empty")
	}
	if len(c.Tools.Test) == 0 || len(c.Tools.Lint) == 0 || len(c.Tools.DocBuild) == 0 {
		return fmt.Errorf("invalid configuration: tools.test, tools.lint and tools.doc_build must each name a command")
	}
	return nil
}
