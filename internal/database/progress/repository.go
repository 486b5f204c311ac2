// Package progress tracks per-sura reading progress derived from per-verse
// read events.
package progress

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// Fixed corpus totals used for statistics, independent of the loaded
// database contents.
const (
	TotalSuras = 114
	TotalAyas  = 6236
)

// Repository handles reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the progress row for a sura, creating one seeded with
// the sura's current verse count and "now" timestamps on first use.
func (r *Repository) GetOrCreate(suraID int) (*entities.ReadingProgress, error) {
	var progress entities.ReadingProgress
	err := r.db.Where("SuraId = ?", suraID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var totalAyas int64
	if err := r.db.Model(&entities.Aya{}).Where("SuraId = ?", suraID).Count(&totalAyas).Error; err != nil {
		return nil, fmt.Errorf("count ayas for sura %d: %w", suraID, err)
	}
	now := time.Now()
	progress = entities.ReadingProgress{
		SuraID:        suraID,
		TotalAyas:     int(totalAyas),
		AyasRead:      0,
		FirstReadDate: now,
		LastReadDate:  now,
		IsCompleted:   false,
	}
	if err := r.db.Create(&progress).Error; err != nil {
		return nil, fmt.Errorf("create progress for sura %d: %w", suraID, err)
	}
	return &progress, nil
}

// Get returns the progress row for a sura, or nil if reading never started.
func (r *Repository) Get(suraID int) (*entities.ReadingProgress, error) {
	var progress entities.ReadingProgress
	err := r.db.Where("SuraId = ?", suraID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// List returns progress for every sura that has been started, most recently
// read first.
func (r *Repository) List() ([]entities.ReadingProgress, error) {
	var progresses []entities.ReadingProgress
	err := r.db.Order("LastReadDate DESC").Find(&progresses).Error
	return progresses, err
}

// MarkAyaRead records a read event for a verse. A verse that does not exist
// is a no-op returning 0. Repeat readings increment the read counter. The
// sura's read count is then recomputed by counting read events, which keeps
// the aggregate authoritative instead of trusting a running counter, and
// completion is stamped when the count reaches the snapshot total.
func (r *Repository) MarkAyaRead(suraID, ayaNumber int) (int, error) {
	var aya entities.Aya
	err := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var status entities.AyaReadStatus
	err = r.db.Where("AyaId = ?", aya.ID).First(&status).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		status = entities.AyaReadStatus{
			AyaID:     aya.ID,
			SuraID:    suraID,
			AyaNumber: ayaNumber,
			IsRead:    true,
			ReadDate:  &now,
			ReadCount: 1,
		}
		if err := r.db.Create(&status).Error; err != nil {
			return 0, fmt.Errorf("create read status: %w", err)
		}
	case err != nil:
		return 0, err
	default:
		status.IsRead = true
		status.ReadDate = &now
		status.ReadCount++
		if err := r.db.Save(&status).Error; err != nil {
			return 0, fmt.Errorf("update read status: %w", err)
		}
	}

	progress, err := r.GetOrCreate(suraID)
	if err != nil {
		return 0, err
	}

	var readCount int64
	err = r.db.Model(&entities.AyaReadStatus{}).
		Where("SuraId = ? AND IsRead = ?", suraID, true).Count(&readCount).Error
	if err != nil {
		return 0, fmt.Errorf("recount read ayas: %w", err)
	}

	progress.AyasRead = int(readCount)
	progress.LastReadDate = now
	if int(readCount) >= progress.TotalAyas && !progress.IsCompleted {
		progress.IsCompleted = true
		progress.CompletedDate = &now
	}
	result := r.db.Save(progress)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// ReadStatuses returns the read events for every verse of a sura.
func (r *Repository) ReadStatuses(suraID int) ([]entities.AyaReadStatus, error) {
	var statuses []entities.AyaReadStatus
	err := r.db.Where("SuraId = ?", suraID).Order("AyaNumber ASC").Find(&statuses).Error
	return statuses, err
}

// Reset deletes all read events for a sura and then its progress row.
func (r *Repository) Reset(suraID int) (int, error) {
	err := r.db.Where("SuraId = ?", suraID).Delete(&entities.AyaReadStatus{}).Error
	if err != nil {
		return 0, err
	}
	result := r.db.Where("SuraId = ?", suraID).Delete(&entities.ReadingProgress{})
	return int(result.RowsAffected), result.Error
}

// Statistics combines the fixed corpus totals with live completion counts.
// Failures fall back to the fixed totals with zero live counts instead of
// propagating.
func (r *Repository) Statistics() entities.ReadingStatistics {
	stats := entities.ReadingStatistics{
		TotalSuras: TotalSuras,
		TotalAyas:  TotalAyas,
	}

	var completed int64
	err := r.db.Model(&entities.ReadingProgress{}).
		Where("IsCompleted = ?", true).Count(&completed).Error
	if err != nil {
		log.Printf("Error counting completed suras: %v", err)
		return stats
	}
	var readAyas int64
	err = r.db.Model(&entities.AyaReadStatus{}).
		Where("IsRead = ?", true).Count(&readAyas).Error
	if err != nil {
		log.Printf("Error counting read ayas: %v", err)
		return stats
	}

	stats.CompletedSuras = int(completed)
	stats.ReadAyas = int(readAyas)
	return stats
}
