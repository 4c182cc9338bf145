package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"devtasks/config"
	"devtasks/database"
	"devtasks/logger"
	"devtasks/tags"

	"github.com/spf13/cobra"
)

// --- Flags ---
var (
	historyLimit int
)

// --- Base Command ---

// tagsCmd represents the base command for code tag operations
var tagsCmd = &cobra.Command{
	Use:     "tags",
	Short:   "Collect and review code tags (FIXME, TODO, ...)",
	Long:    `Scans the project's source tree for configured marker comments, writes an aggregated Markdown summary, and keeps a per-run history of marker counts.`,
	Aliases: []string{"tag"},
}

// --- Collect Command ---

var tagsCollectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Scan the source tree and write the tag summary",
	Long: `Walks the configured project root, scans matching files for marker
comments, and writes the aggregated summary to the configured output
path, replacing any previous summary. Unreadable files are reported as
warnings; the run fails only if no file could be read at all.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'tags collect' command")
		cfg := config.AppConfig

		collector, err := tags.NewCollector(tags.Config{
			Markers:    cfg.Tags.Markers,
			OutputPath: cfg.Tags.Output,
		})
		if err != nil {
			logger.Error("Invalid tag collector configuration: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		paths, err := tags.FindSourceFiles(tags.FindOptions{
			Root:        cfg.Project.Root,
			Suffixes:    cfg.Tags.IncludeSuffixes,
			ExcludeDirs: cfg.Tags.ExcludeDirs,
			OutputPath:  cfg.Tags.Output,
		})
		if err != nil {
			logger.Error("Failed to enumerate source files: %v", err)
			fmt.Fprintf(os.Stderr, "Error enumerating source files: %v\n", err)
			os.Exit(1)
		}

		summary, err := collector.Collect(paths)
		for _, failure := range summary.Failures {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", failure.File, failure.Err)
		}
		if err != nil {
			logger.Error("Tag collection failed: %v", err)
			if errors.Is(err, tags.ErrAllFilesFailed) {
				fmt.Fprintln(os.Stderr, "Error: no input files could be read; report not written.")
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}

		run, err := database.RecordTagRun(summary, cfg.Tags.Markers)
		if err != nil {
			// History is best effort; the report on disk is the deliverable.
			logger.Error("Failed to record tag run: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: could not record run history: %v\n", err)
		}

		if summary.Total == 0 {
			fmt.Printf("No code tags found across %d files.\n", summary.FilesScanned)
		} else {
			for _, marker := range cfg.Tags.Markers {
				if count, ok := summary.Counts[marker]; ok {
					fmt.Printf("Found %d %s tags\n", count, marker)
				}
			}
			fmt.Printf("Wrote summary of %d occurrences to %s\n", summary.Total, cfg.Tags.Output)
		}
		if run.ID != "" {
			logger.Info("Tag run recorded as %s", run.ID)
		}
	},
}

// --- History Command ---

var tagsHistoryCmd = &cobra.Command{
	Use:     "history",
	Short:   "List recent tag collection runs",
	Long:    `Retrieves and displays recent collector runs from the history database, newest first.`,
	Aliases: []string{"hist"},
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Executing 'tags history' command")
		runs, err := database.GetTagRuns(historyLimit)
		if err != nil {
			logger.Error("Failed to query tag runs: %v", err)
			fmt.Fprintln(os.Stderr, "Error retrieving tag run history from database.")
			os.Exit(1)
		}

		if len(runs) == 0 {
			fmt.Println("No tag runs recorded yet. Run 'devtasks tags collect' first.")
			return
		}

		fmt.Println("Recent tag runs:")
		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tRAN AT\tFILES\tFAILED\tTAGS")
		fmt.Fprintln(writer, "--\t------\t-----\t------\t----")
		for _, run := range runs {
			fmt.Fprintf(writer, "%s\t%s\t%d\t%d\t%d\n",
				run.ID, run.RanAt.Format("2006-01-02 15:04:05"), run.FilesScanned, run.FilesFailed, run.TotalTags)
		}
		writer.Flush()
		logger.Info("Successfully listed %d tag runs", len(runs))
	},
}

func init() {
	tagsHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")

	tagsCmd.AddCommand(tagsCollectCmd)
	tagsCmd.AddCommand(tagsHistoryCmd)
	rootCmd.AddCommand(tagsCmd)
}
