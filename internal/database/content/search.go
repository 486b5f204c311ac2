package content

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// SQLite's built-in NOCASE collation only folds ASCII, so LIKE cannot match
// Cyrillic text case-insensitively. Search therefore goes through a dedicated
// driver that installs a custom ContainsKeyword function, the same workaround
// the content database was authored against.
const searchDriverName = "sqlite3_contains_keyword"

func init() {
	sql.Register(searchDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ContainsKeyword", containsKeyword, true)
		},
	})
}

// containsKeyword reports whether field contains keyword, ignoring case.
// Ordinal (simple Unicode) folding keeps results deterministic across
// platforms; locale-aware folding would not.
func containsKeyword(field, keyword interface{}) bool {
	f, ok := field.(string)
	if !ok {
		return false
	}
	k, ok := keyword.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(f), strings.ToLower(k))
}

// Search returns all ayas whose text or comment contains the keyword in any
// case. Blank input yields an empty result, not an error. The scan runs on
// its own short-lived connection so the custom function never interferes
// with the store's shared handle.
func (r *Repository) Search(keyword string) ([]entities.Aya, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []entities.Aya{}, nil
	}

	db, err := sql.Open(searchDriverName, r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT Id, SuraId, AyaId, Text, Arabic, Comment, DetailComment, IsFavorite, HasNote
		 FROM Aya
		 WHERE ContainsKeyword(Text, ?) OR ContainsKeyword(Comment, ?)`,
		keyword, keyword,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ayas []entities.Aya
	for rows.Next() {
		var (
			aya                    entities.Aya
			comment, detailComment sql.NullString
			isFavorite, hasNote    sql.NullBool
		)
		err := rows.Scan(&aya.ID, &aya.SuraID, &aya.AyaID, &aya.Text, &aya.Arabic,
			&comment, &detailComment, &isFavorite, &hasNote)
		if err != nil {
			return nil, err
		}
		aya.Comment = comment.String
		aya.DetailComment = detailComment.String
		aya.IsFavorite = isFavorite.Valid && isFavorite.Bool
		aya.HasNote = hasNote.Valid && hasNote.Bool
		ayas = append(ayas, aya)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if ayas == nil {
		ayas = []entities.Aya{}
	}
	return ayas, nil
}
