package entities

import "time"

// Setting is a persisted key/value preference row. Typed accessors with
// defaults live in internal/prefs; nothing outside that package should
// reference raw keys.
type Setting struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
