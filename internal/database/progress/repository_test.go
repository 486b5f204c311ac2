package progress

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()
	dbPath := "./test_progress_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Sura{}, &entities.Aya{},
		&entities.ReadingProgress{}, &entities.AyaReadStatus{},
	)
	require.NoError(t, err)

	suras := []entities.Sura{{ID: 1, Name: "Фотиҳа", AyaCount: 3}}
	require.NoError(t, db.Create(&suras).Error)
	ayas := []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
		{SuraID: 1, AyaID: 3, Text: "Учинчи оят"},
	}
	require.NoError(t, db.Create(&ayas).Error)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_GetOrCreate_SeedsTotals(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	progress, err := repo.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.SuraID)
	assert.Equal(t, 3, progress.TotalAyas)
	assert.Zero(t, progress.AyasRead)
	assert.False(t, progress.IsCompleted)
	assert.False(t, progress.FirstReadDate.IsZero())

	// Second call returns the same row
	again, err := repo.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)
}

func TestRepository_MarkAyaRead(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rows, err := repo.MarkAyaRead(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	progress, err := repo.Get(1)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.AyasRead)
	assert.False(t, progress.IsCompleted)
}

func TestRepository_MarkAyaRead_RepeatDoesNotInflateProgress(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.MarkAyaRead(1, 1)
	require.NoError(t, err)
	_, err = repo.MarkAyaRead(1, 1)
	require.NoError(t, err)

	progress, err := repo.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.AyasRead)

	statuses, err := repo.ReadStatuses(1)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, 2, statuses[0].ReadCount)
}

func TestRepository_MarkAyaRead_MissingVerse(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	rows, err := repo.MarkAyaRead(1, 99)
	require.NoError(t, err)
	assert.Zero(t, rows)

	progress, err := repo.Get(1)
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestRepository_MarkAyaRead_Completion(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for aya := 1; aya <= 3; aya++ {
		_, err := repo.MarkAyaRead(1, aya)
		require.NoError(t, err)
	}

	progress, err := repo.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.AyasRead)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedDate)
	assert.InDelta(t, 100.0, progress.ProgressPercentage(), 0.001)
}

func TestRepository_Reset(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.MarkAyaRead(1, 1)
	require.NoError(t, err)

	rows, err := repo.Reset(1)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	progress, err := repo.Get(1)
	require.NoError(t, err)
	assert.Nil(t, progress)

	statuses, err := repo.ReadStatuses(1)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestRepository_Statistics(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for aya := 1; aya <= 3; aya++ {
		_, err := repo.MarkAyaRead(1, aya)
		require.NoError(t, err)
	}

	stats := repo.Statistics()
	assert.Equal(t, TotalSuras, stats.TotalSuras)
	assert.Equal(t, TotalAyas, stats.TotalAyas)
	assert.Equal(t, 1, stats.CompletedSuras)
	assert.Equal(t, 3, stats.ReadAyas)
}
