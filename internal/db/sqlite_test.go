package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tensorstack/llmdeck/internal/db/models"
)

func TestInitDB_MigratesAndGeneratesAPIKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "llmdeck.db")

	database, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	key := GetAPIKey(database)
	if !strings.HasPrefix(key, "sk-") || len(key) != 35 {
		t.Fatalf("unexpected generated API key %q", key)
	}

	// RunLog table must be queryable after migration.
	var count int64
	if err := database.Model(&models.RunLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count run logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty run_logs, got %d", count)
	}
}

func TestInitDB_APIKeyStableAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "llmdeck.db")

	first, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	key1 := GetAPIKey(first)

	second, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB reopen: %v", err)
	}
	key2 := GetAPIKey(second)

	if key1 != key2 {
		t.Fatalf("API key changed across opens: %q vs %q", key1, key2)
	}
}

func TestRegenerateAPIKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "llmdeck.db")

	database, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	old := GetAPIKey(database)
	fresh := RegenerateAPIKey(database)
	if fresh == old {
		t.Fatal("expected a new API key")
	}
	if GetAPIKey(database) != fresh {
		t.Fatal("regenerated key not persisted")
	}
}
