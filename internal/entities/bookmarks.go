package entities

import "time"

// BookmarkCollection is a user-defined, named, ordered set of verses.
// Name uniqueness is an application-level check, not a schema constraint.
type BookmarkCollection struct {
	ID           int       `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:Name" json:"name"`
	Description  string    `gorm:"column:Description" json:"description,omitempty"`
	CreatedDate  time.Time `gorm:"column:CreatedDate" json:"created_date"`
	DisplayOrder int       `gorm:"column:DisplayOrder" json:"display_order"`
	ColorCode    string    `gorm:"column:ColorCode" json:"color_code,omitempty"`
}

func (BookmarkCollection) TableName() string {
	return "BookmarkCollection"
}

// AyaBookmarkCollection links an Aya (by internal id) to a collection.
// At most one link per (aya, collection) pair, enforced by an existence
// check before insert.
type AyaBookmarkCollection struct {
	ID           int       `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	AyaID        int       `gorm:"column:AyaId;index" json:"aya_id"`
	CollectionID int       `gorm:"column:CollectionId;index" json:"collection_id"`
	AddedDate    time.Time `gorm:"column:AddedDate" json:"added_date"`
	Notes        string    `gorm:"column:Notes" json:"notes,omitempty"`
}

func (AyaBookmarkCollection) TableName() string {
	return "AyaBookmarkCollection"
}
