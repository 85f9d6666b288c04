package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tensorstack/llmdeck/internal/providers/catalog"
)

// ProvidersHandler returns the configured provider catalog
func ProvidersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers := catalog.GetProviders()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"providers": providers,
			"count":     len(providers),
		})
	}
}

// ProviderHandler returns one catalog entry by ID
func ProviderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		provider, ok := catalog.GetProvider(id)
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": "unknown provider",
				"id":    id,
			})
			return
		}

		// Entries without a configured display name fall back to their ID.
		if name, ok := catalog.DisplayName(id); ok {
			provider.DisplayName = name
		}

		json.NewEncoder(w).Encode(provider)
	}
}

// ReloadProvidersHandler reloads the catalog from file and env
func ReloadProvidersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catalog.InitFromEnvAndConfig(); err != nil {
			http.Error(w, `{"error": "Failed to reload providers: `+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		providers := catalog.GetProviders()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   true,
			"providers": providers,
			"count":     len(providers),
		})
	}
}
