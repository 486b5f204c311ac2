package entities

// Sura represents a chapter of the Quran. Rows ship with the bundled content
// database and are treated as static; only the update merge ever rewrites
// verse text, never chapter metadata.
type Sura struct {
	ID          int    `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:Name" json:"name"`
	ArabicName  string `gorm:"column:ArabicName" json:"arabic_name"`
	Meaning     string `gorm:"column:Meaning" json:"meaning"`
	Description string `gorm:"column:Description" json:"description"`
	AyaCount    int    `gorm:"column:AyaCount" json:"aya_count"`
	RevealedIn  bool   `gorm:"column:RevealedIn" json:"revealed_in"` // true if revealed in Madina
}

func (Sura) TableName() string {
	return "Sura"
}

// Aya represents a verse. (SuraID, AyaID) is the stable natural key used by
// everything outside the store; the auto-assigned Id is internal and may
// change across a reseed, so it must never be persisted elsewhere.
type Aya struct {
	ID            int    `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	SuraID        int    `gorm:"column:SuraId;index" json:"sura_id"`
	AyaID         int    `gorm:"column:AyaId" json:"aya_id"` // verse number within the sura
	Text          string `gorm:"column:Text" json:"text"`
	Arabic        string `gorm:"column:Arabic" json:"arabic"`
	Comment       string `gorm:"column:Comment" json:"comment,omitempty"`
	DetailComment string `gorm:"column:DetailComment" json:"detail_comment,omitempty"`
	IsFavorite    bool   `gorm:"column:IsFavorite" json:"is_favorite"`
	HasNote       bool   `gorm:"column:HasNote" json:"has_note"`
}

func (Aya) TableName() string {
	return "Aya"
}

// AyaSummary is a projection of an Aya joined with its Sura name, used by
// favourites and collection listings.
type AyaSummary struct {
	SuraID   int    `json:"sura_id"`
	AyaID    int    `json:"aya_id"`
	SuraName string `json:"sura_name"`
	Text     string `json:"text"`
}
