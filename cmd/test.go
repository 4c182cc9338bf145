package cmd

import (
	"fmt"
	"os"

	"devtasks/config"
	"devtasks/core"
	"devtasks/logger"

	"github.com/spf13/cobra"
)

var (
	testKeyword string
	testJSON    bool
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the project's configured test command",
	Long: `Invokes the test runner configured under tools.test (default: go test ./...).
With --json the tools.test_json command is run instead and its event
stream is parsed into a pass/fail/skip summary. The command's exit code
is passed through.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'test' command")
		cfg := config.AppConfig

		argv := cfg.Tools.Test
		if testJSON {
			argv = cfg.Tools.TestJSON
		}
		argv = append(append([]string{}, argv...), args...)
		if testKeyword != "" {
			argv = append(argv, "-run", testKeyword)
		}

		result, err := core.RunTool(cmd.Context(), cfg.Project.Root, argv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running test command: %v\n", err)
			os.Exit(1)
		}

		if testJSON {
			summary := core.ParseTestEvents(result.Stdout)
			fmt.Println(summary.String())
			for _, name := range summary.FailedTests {
				fmt.Fprintf(os.Stderr, "FAIL: %s\n", name)
			}
		} else {
			fmt.Print(result.Stdout)
			if result.Stderr != "" {
				fmt.Fprint(os.Stderr, result.Stderr)
			}
		}

		if result.ExitCode != 0 {
			os.Exit(result.ExitCode)
		}
	},
}

func init() {
	testCmd.Flags().StringVarP(&testKeyword, "keyword", "k", "", "only run tests matching this pattern (passed as -run)")
	testCmd.Flags().BoolVar(&testJSON, "json", false, "run the JSON-event test command and print a parsed summary")
	rootCmd.AddCommand(testCmd)
}
