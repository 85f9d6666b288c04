package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/tensorstack/llmdeck/internal/db/models"
	"gorm.io/gorm"
)

func newAuthTestDB(t *testing.T, apiKey string) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.AutoMigrate(&models.Config{}); err != nil {
		t.Fatalf("failed to migrate config: %v", err)
	}
	if apiKey != "" {
		if err := database.Create(&models.Config{Key: "api_key", Value: apiKey}).Error; err != nil {
			t.Fatalf("failed to seed api key: %v", err)
		}
	}
	return database
}

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestAPIKeyAuth_BearerToken(t *testing.T) {
	database := newAuthTestDB(t, "sk-testkey")
	handler := APIKeyAuth(database)(protectedHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sk-testkey")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid bearer token, got %d", rec.Code)
	}
}

func TestAPIKeyAuth_XAPIKeyHeader(t *testing.T) {
	database := newAuthTestDB(t, "sk-testkey")
	handler := APIKeyAuth(database)(protectedHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-api-key", "sk-testkey")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid x-api-key, got %d", rec.Code)
	}
}

func TestAPIKeyAuth_RejectsWrongKey(t *testing.T) {
	database := newAuthTestDB(t, "sk-testkey")
	handler := APIKeyAuth(database)(protectedHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sk-wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
}

func TestAPIKeyAuth_AllowsAllWhenUnconfigured(t *testing.T) {
	database := newAuthTestDB(t, "")
	handler := APIKeyAuth(database)(protectedHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on first-run (no key configured), got %d", rec.Code)
	}
}
