package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tensorstack/llmdeck/internal/tracking"
	"github.com/tensorstack/llmdeck/internal/version"
)

// StatsHandler returns aggregated run statistics
func StatsHandler(tr *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := tr.GetStats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// VersionHandler returns build information
func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version":    version.Version,
			"commit":     version.Commit,
			"build_time": version.BuildTime,
		})
	}
}
