package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tensorstack/llmdeck/internal/db/models"
	"github.com/tensorstack/llmdeck/internal/tracking"
	"github.com/tensorstack/llmdeck/internal/util"
	"gorm.io/gorm"
)

// CreateRunHandler records a new chat run
func CreateRunHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		var run models.RunLog
		if err := json.Unmarshal(payload, &run); err != nil {
			if util.IsVerbose() {
				log.Printf("[API] Rejected run payload: %s", util.TruncateBytes(payload))
			}
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		if run.Model == "" {
			http.Error(w, `{"error": "model is required"}`, http.StatusBadRequest)
			return
		}

		stored, err := tr.Record(run)
		if err != nil {
			http.Error(w, `{"error": "Failed to record run: `+err.Error()+`"}`, http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(stored)
	}
}

// RunsHandler returns recent runs with optional limit and since filters
func RunsHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
				limit = l
			}
		}
		since := 0
		if sinceStr := r.URL.Query().Get("since_minutes"); sinceStr != "" {
			if s, err := strconv.Atoi(sinceStr); err == nil && s > 0 {
				since = s
			}
		}

		runs := tr.GetRuns(limit, since)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"runs":  runs,
			"count": len(runs),
		})
	}
}

// RunHandler returns one run by ID
func RunHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		run, err := tr.GetRun(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, `{"error": "Run not found"}`, http.StatusNotFound)
				return
			}
			http.Error(w, `{"error": "Failed to load run"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	}
}

// UpdateRunStatusHandler moves a run to a new status
func UpdateRunStatusHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Status     string `json:"status"`
			ChatOutput string `json:"chat_output"`
			Metrics    string `json:"metrics"`
			Error      string `json:"error"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}
		if body.Status == "" {
			http.Error(w, `{"error": "status is required"}`, http.StatusBadRequest)
			return
		}

		updates := map[string]interface{}{}
		if body.ChatOutput != "" {
			updates["chat_output"] = body.ChatOutput
		}
		if body.Metrics != "" {
			updates["metrics"] = body.Metrics
		}
		if body.Error != "" {
			updates["error"] = body.Error
		}

		run, err := tr.UpdateStatus(id, body.Status, updates)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, `{"error": "Run not found"}`, http.StatusNotFound)
				return
			}
			http.Error(w, `{"error": "Failed to update run: `+err.Error()+`"}`, http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	}
}

// RunHistoryHandler returns paginated runs for the history view
func RunHistoryHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if pageStr := r.URL.Query().Get("page"); pageStr != "" {
			if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
				page = p
			}
		}
		pageSize := 100
		if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
			if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
				pageSize = s
			}
		}
		search := r.URL.Query().Get("search")

		runs, total := tr.GetRunsWithPagination(page, pageSize, search)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"runs":      runs,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		})
	}
}

// ClearRunsHandler removes all recorded runs
func ClearRunsHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := tr.Clear(); err != nil {
			http.Error(w, `{"error": "Failed to clear runs"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}
}
