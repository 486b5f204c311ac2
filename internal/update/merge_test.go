package update

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/entities"
)

func gormOpenSilent(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func createQuranDB(t *testing.T, path string, ayas []entities.Aya) {
	t.Helper()
	db, err := gormOpenSilent(path)
	require.NoError(t, err)
	defer closeGorm(db)

	require.NoError(t, db.AutoMigrate(&entities.Sura{}, &entities.Aya{}))
	if len(ayas) > 0 {
		require.NoError(t, db.Create(&ayas).Error)
	}
}

func readAya(t *testing.T, path string, suraID, ayaNumber int) entities.Aya {
	t.Helper()
	db, err := gormOpenSilent(path)
	require.NoError(t, err)
	defer closeGorm(db)

	var aya entities.Aya
	require.NoError(t, db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error)
	return aya
}

func TestMergeTranslations_UpdatesTranslationColumnsOnly(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "target.db")
	sourcePath := filepath.Join(dir, "source.db")

	createQuranDB(t, targetPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Эски таржима", Comment: "Эски шарҳ", IsFavorite: true, HasNote: true},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янги таржима", Comment: "Янги шарҳ", DetailComment: "Батафсил шарҳ"},
		{SuraID: 1, AyaID: 2, Text: "Янгиланган иккинчи оят"},
	})

	result, err := mergeTranslations(sourcePath, targetPath)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Zero(t, result.Skipped)

	merged := readAya(t, targetPath, 1, 1)
	assert.Equal(t, "Янги таржима", merged.Text)
	assert.Equal(t, "Янги шарҳ", merged.Comment)
	assert.Equal(t, "Батафсил шарҳ", merged.DetailComment)
	// User state survives the merge
	assert.True(t, merged.IsFavorite)
	assert.True(t, merged.HasNote)
}

func TestMergeTranslations_SkipsMissingVerses(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "target.db")
	sourcePath := filepath.Join(dir, "source.db")

	createQuranDB(t, targetPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янгиланган оят"},
		{SuraID: 1, AyaID: 2, Text: "Маҳаллийда йўқ оят"},
	})

	result, err := mergeTranslations(sourcePath, targetPath)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)

	// The missing verse was not inserted
	db, err := gormOpenSilent(targetPath)
	require.NoError(t, err)
	defer closeGorm(db)
	var count int64
	require.NoError(t, db.Model(&entities.Aya{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMergeTranslations_RollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "target.db")
	sourcePath := filepath.Join(dir, "source.db")

	createQuranDB(t, targetPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янги биринчи"},
		{SuraID: 1, AyaID: 2, Text: "Янги иккинчи"},
	})

	// Abort the transaction partway through with a trigger on the second row
	db, err := gormOpenSilent(targetPath)
	require.NoError(t, err)
	err = db.Exec(`CREATE TRIGGER fail_second_update BEFORE UPDATE ON Aya
		WHEN NEW.AyaId = 2
		BEGIN SELECT RAISE(ABORT, 'forced failure'); END`).Error
	require.NoError(t, err)
	closeGorm(db)

	_, err = mergeTranslations(sourcePath, targetPath)
	require.Error(t, err)

	// The first row's update was rolled back with the transaction
	aya := readAya(t, targetPath, 1, 1)
	assert.Equal(t, "Биринчи оят", aya.Text)
}
