package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"devtasks/database"
	"devtasks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, reportContent string) http.Handler {
	t.Helper()
	dir := t.TempDir()

	reportPath := filepath.Join(dir, "summary.md")
	if reportContent != "" {
		require.NoError(t, os.WriteFile(reportPath, []byte(reportContent), 0644))
	}

	require.NoError(t, database.InitDB(filepath.Join(dir, "test.db")))
	t.Cleanup(database.CloseDB)

	return NewRouter(reportPath, "")
}

func TestReportHandlerServesMarkdown(t *testing.T) {
	router := setupRouter(t, "# Code Tag Summary\n\nFound code tags for TODO (1)\n")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, recorder.Body.String(), "Found code tags for TODO (1)")
}

func TestReportHandlerMissingReport(t *testing.T) {
	router := setupRouter(t, "")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListRunsHandler(t *testing.T) {
	router := setupRouter(t, "")

	_, err := database.RecordTagRun(models.ScanSummary{
		FilesScanned: 5,
		Counts:       map[string]int{"TODO": 2},
		Total:        2,
	}, []string{"TODO"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/runs/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var runs []models.TagRun
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].TotalTags)
}

func TestListRunsHandlerRejectsBadLimit(t *testing.T) {
	router := setupRouter(t, "")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/runs/?limit=zero", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetRunHandler(t *testing.T) {
	router := setupRouter(t, "")

	run, err := database.RecordTagRun(models.ScanSummary{
		FilesScanned: 1,
		Counts:       map[string]int{"FIXME": 4},
		Total:        4,
	}, []string{"FIXME"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var fetched models.TagRun
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, run.ID, fetched.ID)
	require.Len(t, fetched.Counts, 1)
	assert.Equal(t, 4, fetched.Counts[0].Count)
}

func TestGetRunHandlerNotFound(t *testing.T) {
	router := setupRouter(t, "")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/runs/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
