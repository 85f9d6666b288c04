package main

import (
	"log"
	"net/http"
	"os"

	"github.com/tensorstack/llmdeck/internal/db"
	"github.com/tensorstack/llmdeck/internal/providers/catalog"
	"github.com/tensorstack/llmdeck/internal/server"
	"github.com/tensorstack/llmdeck/internal/tracking"
	"github.com/tensorstack/llmdeck/internal/version"
)

func main() {
	// Initialize database
	dbPath := os.Getenv("LLMDECK_DB")
	if dbPath == "" {
		dbPath = "llmdeck.db"
	}
	database, err := db.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize provider catalog
	if err := catalog.InitFromEnvAndConfig(); err != nil {
		log.Printf("⚠️ Provider catalog load error (using defaults): %v", err)
	}

	// Initialize run tracker
	tracker := tracking.NewTracker(database)

	// Create router
	r := server.NewRouter(database, tracker)

	// Start server
	host := os.Getenv("HOST")
	if host == "" {
		host = "127.0.0.1" // Default to localhost, set HOST=0.0.0.0 for LAN access
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := host + ":" + port

	log.Printf("🃏 llmdeck %s starting on http://%s", version.Version, addr)
	log.Printf("📊 Dashboard: http://localhost:%s", port)
	log.Printf("🔌 API: http://localhost:%s/api", port)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
