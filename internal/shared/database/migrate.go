package database

import (
	"venuelayout/internal/layouts"
	"venuelayout/internal/tiers"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&layouts.VenueLayout{},
		&tiers.EventTierBoundaries{},
	); err != nil {
		return err
	}
	return MigrateIndexes(db)
}

// MigrateIndexes adds the lookup indexes AutoMigrate cannot express.
func MigrateIndexes(db *gorm.DB) error {
	// Template names are unique among templates only
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_venue_layouts_template_name
		ON venue_layouts (name) WHERE is_template = true;
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_venue_layouts_status_updated
		ON venue_layouts (status, updated_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
