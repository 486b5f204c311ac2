// Package settings provides the raw key/value preference rows. Typed
// accessors with defaults live in internal/prefs.
package settings

import (
	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// Repository handles settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a setting by key. Returns gorm.ErrRecordNotFound when the
// key has never been set.
func (r *Repository) Get(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Value returns the stored value for key, or fallback when absent.
func (r *Repository) Value(key, fallback string) string {
	setting, err := r.Get(key)
	if err != nil || setting.Value == "" {
		return fallback
	}
	return setting.Value
}

// Set creates or updates a setting.
func (r *Repository) Set(key, value string) error {
	var setting entities.Setting
	result := r.db.Where("key = ?", key).First(&setting)
	if result.Error == gorm.ErrRecordNotFound {
		setting = entities.Setting{Key: key, Value: value}
		return r.db.Create(&setting).Error
	}
	if result.Error != nil {
		return result.Error
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}

// Delete removes a setting by key. Deleting an absent key is not an error.
func (r *Repository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.Setting{}).Error
}
