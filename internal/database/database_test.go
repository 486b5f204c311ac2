package database

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// buildTemplate writes a content database containing only the shipped
// tables, the way the bundled template does.
func buildTemplate(t *testing.T, path string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.Sura{}, &entities.Aya{}))
	suras := []entities.Sura{{ID: 1, Name: "Фотиҳа", AyaCount: 7}}
	require.NoError(t, db.Create(&suras).Error)
	ayas := []entities.Aya{{SuraID: 1, AyaID: 1, Text: "Биринчи оят"}}
	require.NoError(t, db.Create(&ayas).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestDatabase_FreshInitialization(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db := New(dbPath, "")
	require.NoError(t, db.EnsureInitialized())
	defer db.Close()

	gormDB, err := db.DB()
	require.NoError(t, err)

	// Schema comes from AutoMigrate when there is no template
	sura := entities.Sura{ID: 1, Name: "Фотиҳа", AyaCount: 7}
	assert.NoError(t, gormDB.Create(&sura).Error)
}

func TestDatabase_CopiesTemplateOnFirstRun(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	templatePath := "./test_database_" + t.Name() + "_template.db"
	defer os.Remove(dbPath)
	defer os.Remove(templatePath)

	buildTemplate(t, templatePath)

	db := New(dbPath, templatePath)
	require.NoError(t, db.EnsureInitialized())
	defer db.Close()

	gormDB, err := db.DB()
	require.NoError(t, err)

	// Content shipped in the template survives provisioning
	var sura entities.Sura
	require.NoError(t, gormDB.Where("Id = ?", 1).First(&sura).Error)
	assert.Equal(t, "Фотиҳа", sura.Name)

	// App-owned tables are created even though the template predefines
	// Sura and Aya
	note := entities.Note{SuraID: 1, AyaID: 1, Title: "t", Content: "c"}
	assert.NoError(t, gormDB.Create(&note).Error)
}

func TestDatabase_TemplateNotRecopied(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	templatePath := "./test_database_" + t.Name() + "_template.db"
	defer os.Remove(dbPath)
	defer os.Remove(templatePath)

	buildTemplate(t, templatePath)

	db := New(dbPath, templatePath)
	require.NoError(t, db.EnsureInitialized())

	gormDB, err := db.DB()
	require.NoError(t, err)
	aya := entities.Aya{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"}
	require.NoError(t, gormDB.Create(&aya).Error)
	require.NoError(t, db.Close())

	// A second process start must keep user data instead of restoring
	// the template
	reopened := New(dbPath, templatePath)
	require.NoError(t, reopened.EnsureInitialized())
	defer reopened.Close()

	gormDB, err = reopened.DB()
	require.NoError(t, err)
	var count int64
	require.NoError(t, gormDB.Model(&entities.Aya{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestDatabase_ConcurrentInitialization(t *testing.T) {
	dbPath := "./test_database_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db := New(dbPath, "")
	defer db.Close()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.EnsureInitialized()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	gormDB, err := db.DB()
	require.NoError(t, err)
	sura := entities.Sura{ID: 1, Name: "Фотиҳа", AyaCount: 7}
	assert.NoError(t, gormDB.Create(&sura).Error)
}
