// Package handlers implements the dashboard HTTP API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tensorstack/llmdeck/internal/ui"
)

// ProviderResolveHandler resolves a model ID to its provider name.
// ?display=true returns the human-readable form. Unknown models are a 404,
// not an error: the UI supplies its own fallback label.
func ProviderResolveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model := r.URL.Query().Get("model")
		display := r.URL.Query().Get("display") == "true"

		provider, ok := ui.ChatProvider(model, display)
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": "unknown model",
				"model": model,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    model,
			"provider": provider,
			"display":  display,
		})
	}
}

// StatusColorsHandler returns the full status→color table.
func StatusColorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"colors": ui.StatusColors(),
		})
	}
}

// StatusColorHandler returns the color class for a single status keyword,
// 404 when the status is not one of the tracked run states.
func StatusColorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := chi.URLParam(r, "status")

		color, ok := ui.StatusColor(status)
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":  "unknown status",
				"status": status,
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"color":  color,
		})
	}
}
