package update

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// MergeResult summarizes a translation merge.
type MergeResult struct {
	Updated int
	Skipped int
}

// mergeTranslations copies the translation columns from the database at
// sourcePath into the database at targetPath. Rows are matched by sura and
// verse number, and only Text, Comment and DetailComment are touched, so
// user state stored alongside the verses (favourite and note flags) is
// preserved. Verses present only in the source are skipped, not inserted.
// All writes happen inside a single transaction on the target.
func mergeTranslations(sourcePath, targetPath string) (*MergeResult, error) {
	source, err := gorm.Open(sqlite.Open(sourcePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open source database: %w", err)
	}
	defer closeGorm(source)

	target, err := gorm.Open(sqlite.Open(targetPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open target database: %w", err)
	}
	defer closeGorm(target)

	var incoming []entities.Aya
	if err := source.Find(&incoming).Error; err != nil {
		return nil, fmt.Errorf("read source ayas: %w", err)
	}

	result := &MergeResult{}
	err = target.Transaction(func(tx *gorm.DB) error {
		for _, aya := range incoming {
			res := tx.Model(&entities.Aya{}).
				Where("SuraId = ? AND AyaId = ?", aya.SuraID, aya.AyaID).
				Updates(map[string]interface{}{
					"Text":          aya.Text,
					"Comment":       aya.Comment,
					"DetailComment": aya.DetailComment,
				})
			if res.Error != nil {
				return fmt.Errorf("update aya %d:%d: %w", aya.SuraID, aya.AyaID, res.Error)
			}
			if res.RowsAffected == 0 {
				log.Printf("Skipping aya %d:%d not present in local database", aya.SuraID, aya.AyaID)
				result.Skipped++
				continue
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
