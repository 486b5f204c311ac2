package favourites

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/database/content"
	"github.com/sunsiz/QuranApp/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()
	dbPath := "./test_favourites_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Sura{}, &entities.Aya{})
	require.NoError(t, err)

	suras := []entities.Sura{
		{ID: 1, Name: "Фотиҳа", AyaCount: 7},
		{ID: 49, Name: "Ҳужурот", AyaCount: 18},
	}
	require.NoError(t, db.Create(&suras).Error)
	ayas := []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
		{SuraID: 49, AyaID: 11, Text: "Ўн биринчи оят"},
	}
	require.NoError(t, db.Create(&ayas).Error)

	repo := NewRepository(db, content.NewRepository(db, dbPath))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetFavourite(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rows, err := repo.SetFavourite(1, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_SetFavourite_MissingVerse(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rows, err := repo.SetFavourite(1, 99, true)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}

func TestRepository_IsFavourite(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	fav, err := repo.IsFavourite(1, 1)
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = repo.SetFavourite(1, 1, true)
	require.NoError(t, err)

	fav, err = repo.IsFavourite(1, 1)
	require.NoError(t, err)
	assert.True(t, fav)

	// Missing verse reads as not favourite, not as an error
	fav, err = repo.IsFavourite(99, 1)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestRepository_Toggle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	state, err := repo.Toggle(49, 11)
	require.NoError(t, err)
	assert.True(t, state)

	state, err = repo.Toggle(49, 11)
	require.NoError(t, err)
	assert.False(t, state)
}

func TestRepository_Toggle_MissingVerse(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	state, err := repo.Toggle(3, 1)
	require.NoError(t, err)
	assert.False(t, state)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_List_WithSuraNames(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.SetFavourite(1, 2, true)
	require.NoError(t, err)
	_, err = repo.SetFavourite(49, 11, true)
	require.NoError(t, err)

	favourites, err := repo.List()
	require.NoError(t, err)
	require.Len(t, favourites, 2)
	assert.Equal(t, "Фотиҳа", favourites[0].SuraName)
	assert.Equal(t, "Ҳужурот", favourites[1].SuraName)
	assert.Equal(t, 11, favourites[1].AyaID)
}
