package database

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zerix-app/zerix/internal/models"
)

// Connect opens Postgres when DATABASE_URL is set, otherwise a local
// sqlite file, and migrates the schema.
func (d *Database) Connect() error {
	cfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "zerix.db"
		}
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return err
	}

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Message{})
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
