package test_util

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// GetDBConnection opens a silent sqlite connection for tests
func GetDBConnection(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	return db, err
}

// Migrate creates the table for model, which must be a pointer
func Migrate(db *gorm.DB, model interface{}) error {
	return db.AutoMigrate(model)
}
