package cmd

import (
	"net/http"

	"devtasks/api"
	"devtasks/config"
	"devtasks/logger"

	"github.com/spf13/cobra"
)

var servePort string

var docServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tag report, run history and built docs over HTTP",
	Long: `Starts a local HTTP server exposing the rendered tag summary at
/report, the run history as JSON under /api/runs, and the built
documentation directory under /docs/.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig
		portToUse := servePort
		if portToUse == "" {
			portToUse = cfg.Server.Port
		}

		router := api.NewRouter(cfg.Tags.Output, cfg.Server.DocsDir)
		logger.Info("Starting report server on port %s (report: %s, docs: %s)", portToUse, cfg.Tags.Output, cfg.Server.DocsDir)

		if err := http.ListenAndServe(":"+portToUse, router); err != nil {
			logger.Fatal("Report server failed: %v", err)
		}
	},
}

func init() {
	docServeCmd.Flags().StringVarP(&servePort, "port", "p", "", "port for the report server (overrides config/default)")
	docCmd.AddCommand(docServeCmd)
}
