package setup

import (
	"fmt"

	"gorm.io/gorm"

	"soil-advisor/internal/domain"
)

// MigrateDB creates or updates the two persistent tables. The unique index on
// users.username is what enforces the registration invariant; failing to
// create it is a startup error.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.PredictionRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
