package entities

// Note is a user-written annotation attached to a single verse. One note per
// verse by convention: the store looks up before inserting, there is no
// uniqueness constraint at the schema level.
type Note struct {
	ID      int    `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	SuraID  int    `gorm:"column:SuraId;index" json:"sura_id"`
	AyaID   int    `gorm:"column:AyaId" json:"aya_id"`
	Title   string `gorm:"column:Title" json:"title"`
	Content string `gorm:"column:Content" json:"content"`
}

func (Note) TableName() string {
	return "Note"
}
