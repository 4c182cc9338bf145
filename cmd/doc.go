package cmd

import (
	"fmt"
	"os"

	"devtasks/config"
	"devtasks/core"
	"devtasks/logger"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:     "doc",
	Short:   "Build or serve the project documentation",
	Aliases: []string{"docs"},
}

var docBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the configured documentation generator",
	Long: `Invokes the documentation builder configured under tools.doc_build
(default: mkdocs build). Rendering is entirely the builder's concern;
its exit code is passed through.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'doc build' command")
		cfg := config.AppConfig

		argv := append(append([]string{}, cfg.Tools.DocBuild...), args...)
		result, err := core.RunTool(cmd.Context(), cfg.Project.Root, argv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running documentation builder: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(result.Stdout)
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		if result.ExitCode != 0 {
			os.Exit(result.ExitCode)
		}
		fmt.Printf("Documentation built into %s\n", cfg.Server.DocsDir)
	},
}

func init() {
	docCmd.AddCommand(docBuildCmd)
	rootCmd.AddCommand(docCmd)
}
