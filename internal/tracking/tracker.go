// Package tracking records chat runs and their status transitions for the
// dashboard history and stats views.
package tracking

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tensorstack/llmdeck/internal/db/models"
	"github.com/tensorstack/llmdeck/internal/ui"
	"github.com/tensorstack/llmdeck/internal/util"
	"gorm.io/gorm"
)

const (
	// MaxInputSize limits chat input storage to 1MB
	MaxInputSize = 1024 * 1024
	// MaxOutputSize limits chat output storage to 512KB
	MaxOutputSize = 512 * 1024
	// MaxMemoryRuns limits the in-memory run cache
	MaxMemoryRuns = 100
)

// Tracker manages run logging and statistics
type Tracker struct {
	db *gorm.DB

	// In-memory cache for recent runs (thread-safe)
	recentRuns []models.RunLog
	runsMu     sync.RWMutex

	// In-memory stats (updated atomically)
	totalRuns  atomic.Int64
	doneCount  atomic.Int64
	errorCount atomic.Int64
}

// NewTracker creates a Tracker backed by the given database.
func NewTracker(db *gorm.DB) *Tracker {
	tr := &Tracker{
		db:         db,
		recentRuns: make([]models.RunLog, 0, MaxMemoryRuns),
	}

	if err := db.AutoMigrate(&models.RunLog{}); err != nil {
		log.Printf("[Tracking] Failed to migrate RunLog table: %v", err)
	}

	tr.loadStatsFromDB()

	return tr
}

// Record stores a new run. Missing ID, timestamp, status and provider fields
// are filled in; oversized bodies are truncated before persisting.
func (tr *Tracker) Record(run models.RunLog) (models.RunLog, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Timestamp == 0 {
		run.Timestamp = time.Now().UnixMilli()
	}
	if run.Status == "" {
		run.Status = models.StatusIdle
	}
	if !ui.KnownStatus(run.Status) {
		return models.RunLog{}, fmt.Errorf("unknown run status %q", run.Status)
	}
	if run.Provider == "" {
		if provider, ok := ui.ChatProvider(run.Model, false); ok {
			run.Provider = provider
		}
	}

	if len(run.ChatInput) > MaxInputSize {
		run.ChatInput = run.ChatInput[:MaxInputSize] + "...[truncated]"
	}
	if len(run.ChatOutput) > MaxOutputSize {
		run.ChatOutput = run.ChatOutput[:MaxOutputSize] + "...[truncated]"
	}

	if err := tr.db.Create(&run).Error; err != nil {
		return models.RunLog{}, err
	}

	tr.totalRuns.Add(1)
	tr.applyStatusDelta(run.Status, 1)

	if util.IsVerbose() {
		log.Printf("[Tracking] Recorded run %s model=%s status=%s input=%s",
			run.ID, run.Model, run.Status, util.TruncateLog(run.ChatInput, util.DefaultLogMaxLen))
	}

	tr.runsMu.Lock()
	tr.recentRuns = append([]models.RunLog{run}, tr.recentRuns...)
	if len(tr.recentRuns) > MaxMemoryRuns {
		tr.recentRuns = tr.recentRuns[:MaxMemoryRuns]
	}
	tr.runsMu.Unlock()

	return run, nil
}

// UpdateStatus moves a run to a new status, optionally attaching output,
// metrics and an error message from the finished run.
func (tr *Tracker) UpdateStatus(id, status string, updates map[string]interface{}) (models.RunLog, error) {
	if !ui.KnownStatus(status) {
		return models.RunLog{}, fmt.Errorf("unknown run status %q", status)
	}

	var run models.RunLog
	if err := tr.db.First(&run, "id = ?", id).Error; err != nil {
		return models.RunLog{}, err
	}

	previous := run.Status
	fields := map[string]interface{}{"status": status}
	for k, v := range updates {
		fields[k] = v
	}
	if err := tr.db.Model(&run).Updates(fields).Error; err != nil {
		return models.RunLog{}, err
	}
	if err := tr.db.First(&run, "id = ?", id).Error; err != nil {
		return models.RunLog{}, err
	}

	tr.applyStatusDelta(previous, -1)
	tr.applyStatusDelta(status, 1)

	if util.IsVerbose() {
		log.Printf("[Tracking] Run %s status %s -> %s", id, previous, status)
	}

	tr.runsMu.Lock()
	for i := range tr.recentRuns {
		if tr.recentRuns[i].ID == id {
			tr.recentRuns[i] = run
			break
		}
	}
	tr.runsMu.Unlock()

	return run, nil
}

// GetRun returns a single run by ID.
func (tr *Tracker) GetRun(id string) (models.RunLog, error) {
	var run models.RunLog
	err := tr.db.First(&run, "id = ?", id).Error
	return run, err
}

// GetRuns returns recent runs, newest first, with optional time filter.
func (tr *Tracker) GetRuns(limit int, sinceMinutes int) []models.RunLog {
	if limit <= 0 {
		limit = 100
	}

	var runs []models.RunLog
	query := tr.db.Order("timestamp DESC").Limit(limit)

	if sinceMinutes > 0 {
		sinceTime := time.Now().Add(-time.Duration(sinceMinutes) * time.Minute).UnixMilli()
		query = query.Where("timestamp >= ?", sinceTime)
	}

	if err := query.Find(&runs).Error; err != nil {
		log.Printf("[Tracking] Failed to get runs from DB: %v", err)
		// Fallback to memory
		tr.runsMu.RLock()
		defer tr.runsMu.RUnlock()
		if limit > len(tr.recentRuns) {
			limit = len(tr.recentRuns)
		}
		return tr.recentRuns[:limit]
	}
	return runs
}

// GetRunsWithPagination returns runs with pagination support for the history view.
func (tr *Tracker) GetRunsWithPagination(page, pageSize int, search string) ([]models.RunLog, int64) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	var runs []models.RunLog
	var total int64

	query := tr.db.Model(&models.RunLog{})

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("model LIKE ? OR provider LIKE ? OR session_id LIKE ? OR error LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	query.Count(&total)

	offset := (page - 1) * pageSize
	if err := query.Order("timestamp DESC").Offset(offset).Limit(pageSize).Find(&runs).Error; err != nil {
		log.Printf("[Tracking] Failed to get runs with pagination: %v", err)
		return nil, 0
	}

	return runs, total
}

// GetStats returns aggregated run statistics.
func (tr *Tracker) GetStats() models.RunStats {
	return models.RunStats{
		TotalRuns:  tr.totalRuns.Load(),
		DoneCount:  tr.doneCount.Load(),
		ErrorCount: tr.errorCount.Load(),
	}
}

// Clear removes all runs from memory and database.
func (tr *Tracker) Clear() error {
	tr.runsMu.Lock()
	tr.recentRuns = tr.recentRuns[:0]
	tr.runsMu.Unlock()

	tr.totalRuns.Store(0)
	tr.doneCount.Store(0)
	tr.errorCount.Store(0)

	if err := tr.db.Exec("DELETE FROM run_logs").Error; err != nil {
		log.Printf("[Tracking] Failed to clear runs: %v", err)
		return err
	}

	log.Printf("[Tracking] All runs cleared")
	return nil
}

func (tr *Tracker) applyStatusDelta(status string, delta int64) {
	switch status {
	case models.StatusDone:
		tr.doneCount.Add(delta)
	case models.StatusError:
		tr.errorCount.Add(delta)
	}
}

// loadStatsFromDB loads initial statistics from the database.
func (tr *Tracker) loadStatsFromDB() {
	var total, done, errors int64

	tr.db.Model(&models.RunLog{}).Count(&total)
	tr.db.Model(&models.RunLog{}).Where("status = ?", models.StatusDone).Count(&done)
	tr.db.Model(&models.RunLog{}).Where("status = ?", models.StatusError).Count(&errors)

	tr.totalRuns.Store(total)
	tr.doneCount.Store(done)
	tr.errorCount.Store(errors)

	log.Printf("[Tracking] Loaded stats: total=%d, done=%d, errors=%d", total, done, errors)
}
