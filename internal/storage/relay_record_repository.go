package storage

import (
	"time"

	"tg-relay/internal/logger"
	"tg-relay/internal/models"

	"gorm.io/gorm"
)

// RelayRecordRepository handles database operations for RelayRecord.
// A nil repository is valid and turns every operation into a no-op, so
// callers do not have to branch on whether the database is enabled.
type RelayRecordRepository struct {
	db *gorm.DB
}

// NewRelayRecordRepository creates a new RelayRecordRepository
func NewRelayRecordRepository(db *gorm.DB) *RelayRecordRepository {
	if db == nil {
		return nil
	}
	return &RelayRecordRepository{db: db}
}

// MigrateTable ensures the RelayRecord table exists with the right schema
func (r *RelayRecordRepository) MigrateTable() error {
	if r == nil {
		return nil
	}
	return r.db.AutoMigrate(&models.RelayRecord{})
}

// Insert stores one relay attempt, best-effort.
func (r *RelayRecordRepository) Insert(rec *models.RelayRecord) {
	if r == nil {
		return
	}
	if err := r.db.Create(rec).Error; err != nil {
		logger.Warningf("Error saving relay record: %v", err)
	}
}

// PruneOlderThan deletes audit rows older than the given age and
// returns how many were removed.
func (r *RelayRecordRepository) PruneOlderThan(age time.Duration) (int64, error) {
	if r == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-age)
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.RelayRecord{})
	return result.RowsAffected, result.Error
}

// RecentForGroup returns the latest audit rows for one group, newest first.
func (r *RelayRecordRepository) RecentForGroup(groupID int64, limit int) ([]*models.RelayRecord, error) {
	if r == nil {
		return nil, nil
	}
	var records []*models.RelayRecord
	result := r.db.Where("group_id = ?", groupID).Order("created_at DESC").Limit(limit).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
