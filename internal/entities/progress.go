package entities

import "time"

// ReadingProgress aggregates per-sura reading state. One row per sura,
// created lazily on the first read event. AyasRead is recomputed from
// AyaReadStatus rows rather than incremented, so it cannot drift.
type ReadingProgress struct {
	ID            int        `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	SuraID        int        `gorm:"column:SuraId;index" json:"sura_id"`
	TotalAyas     int        `gorm:"column:TotalAyas" json:"total_ayas"`
	AyasRead      int        `gorm:"column:AyasRead" json:"ayas_read"`
	FirstReadDate time.Time  `gorm:"column:FirstReadDate" json:"first_read_date"`
	LastReadDate  time.Time  `gorm:"column:LastReadDate" json:"last_read_date"`
	IsCompleted   bool       `gorm:"column:IsCompleted" json:"is_completed"`
	CompletedDate *time.Time `gorm:"column:CompletedDate" json:"completed_date,omitempty"`
}

func (ReadingProgress) TableName() string {
	return "ReadingProgress"
}

// ProgressPercentage returns the completion ratio as a percentage.
func (p ReadingProgress) ProgressPercentage() float64 {
	if p.TotalAyas <= 0 {
		return 0
	}
	return float64(p.AyasRead) / float64(p.TotalAyas) * 100
}

// AyaReadStatus records read events for a single verse. Created on the first
// mark-as-read; repeat readings bump ReadCount and ReadDate.
type AyaReadStatus struct {
	ID        int        `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	AyaID     int        `gorm:"column:AyaId;index" json:"aya_id"` // Aya.Id, not the verse number
	SuraID    int        `gorm:"column:SuraId;index" json:"sura_id"`
	AyaNumber int        `gorm:"column:AyaNumber" json:"aya_number"`
	IsRead    bool       `gorm:"column:IsRead" json:"is_read"`
	ReadDate  *time.Time `gorm:"column:ReadDate" json:"read_date,omitempty"`
	ReadCount int        `gorm:"column:ReadCount" json:"read_count"`
}

func (AyaReadStatus) TableName() string {
	return "AyaReadStatus"
}

// ReadingStatistics is the corpus-wide summary reported to the UI. Totals are
// fixed Quran constants, independent of what the local database holds.
type ReadingStatistics struct {
	TotalSuras     int `json:"total_suras"`
	CompletedSuras int `json:"completed_suras"`
	TotalAyas      int `json:"total_ayas"`
	ReadAyas       int `json:"read_ayas"`
}
