package db

import (
	types "github.com/radarloop/radarloop-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Feed
		&types.Item{},
		&types.Decision{},

		// Learned preference state
		&types.UserSignalWeight{},
	)
}
