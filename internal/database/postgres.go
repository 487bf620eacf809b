package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the postgres connection and stores the handle in DB.
// Callers are expected to treat a failure as a degraded state, not a
// fatal one: history simply stays empty while generation keeps working.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		DB = nil
		return nil, err
	}

	DB = db
	return db, nil
}
