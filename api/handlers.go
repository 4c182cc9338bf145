package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"devtasks/database"
	"devtasks/logger"
	"devtasks/models"

	"github.com/go-chi/chi/v5"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, models.ErrorResponse{Message: message})
}

// ReportHandler serves the rendered tag summary as Markdown text.
func ReportHandler(reportPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := os.ReadFile(reportPath)
		if err != nil {
			if os.IsNotExist(err) {
				respondWithError(w, http.StatusNotFound, "No tag report has been generated yet. Run 'devtasks tags collect' first.")
				return
			}
			logger.Error("ReportHandler: Error reading report %s: %v", reportPath, err)
			respondWithError(w, http.StatusInternalServerError, "Error reading tag report.")
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write(content)
	}
}

// ListRunsHandler returns recent collector runs, newest first.
// Supports an optional ?limit=N query parameter.
func ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid 'limit' query parameter.")
			return
		}
		limit = parsed
	}

	runs, err := database.GetTagRuns(limit)
	if err != nil {
		logger.Error("ListRunsHandler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Error retrieving tag runs.")
		return
	}
	if runs == nil {
		runs = []models.TagRun{}
	}
	respondWithJSON(w, http.StatusOK, runs)
}

// GetRunHandler returns one run with its per-marker counts.
func GetRunHandler(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run, err := database.GetTagRunByID(runID)
	if err != nil {
		logger.Error("GetRunHandler: run %s: %v", runID, err)
		respondWithError(w, http.StatusNotFound, "Tag run not found.")
		return
	}
	respondWithJSON(w, http.StatusOK, run)
}
