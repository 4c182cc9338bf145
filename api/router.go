package api

import (
	"net/http"

	"devtasks/logger"

	"github.com/go-chi/chi/v5"
)

// NewRouter configures the report server: the rendered tag summary, the
// run-history API, and the built documentation directory.
func NewRouter(reportPath, docsDir string) http.Handler {
	router := chi.NewRouter()

	router.Get("/report", ReportHandler(reportPath))

	router.Route("/api/runs", func(subRouter chi.Router) {
		subRouter.Get("/", ListRunsHandler)
		subRouter.Get("/{runID}", GetRunHandler)
	})

	if docsDir != "" {
		fileServer := http.FileServer(http.Dir(docsDir))
		router.Handle("/docs/*", http.StripPrefix("/docs/", fileServer))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("Unhandled route: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return router
}
