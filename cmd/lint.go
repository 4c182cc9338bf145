package cmd

import (
	"fmt"
	"os"

	"devtasks/config"
	"devtasks/core"
	"devtasks/logger"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run the project's configured linter",
	Long: `Invokes the linter configured under tools.lint (default:
golangci-lint run). Lint rules themselves are the linter's concern; the
command is judged by its exit code, which is passed through.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'lint' command")
		cfg := config.AppConfig

		argv := append(append([]string{}, cfg.Tools.Lint...), args...)
		result, err := core.RunTool(cmd.Context(), cfg.Project.Root, argv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running lint command: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(result.Stdout)
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		if result.ExitCode != 0 {
			os.Exit(result.ExitCode)
		}
		fmt.Println("Lint passed.")
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
