package database

import (
	"github.com/sednex/community-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init connects to postgres and brings the schema up to date.
func Init(databaseURL string, debug bool) (*gorm.DB, error) {
	db, err := Connect(databaseURL, debug)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Connect(databaseURL string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return Open(postgres.Open(databaseURL), level)
}

// Open connects through any gorm dialector. Duplicate-key failures are
// translated to gorm.ErrDuplicatedKey so services can report conflicts.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
