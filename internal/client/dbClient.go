package client

import (
	"log"

	"gamestore/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitSqliteClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&model.Game{},
		&model.GameFile{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}

// SeedCatalog upserts the given games, so repeated boots with the same seed
// stay idempotent.
func SeedCatalog(db *gorm.DB, games []*model.Game) error {
	for _, game := range games {
		if err := db.Clauses(clause.OnConflict{
			UpdateAll: true,
		}).Create(game).Error; err != nil {
			return err
		}
	}
	return nil
}
