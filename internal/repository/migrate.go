package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every table the repositories
// own. cmd/seed and the test suites call this; production migrations run it
// at startup too, which is acceptable at this deployment scale.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&apartmentModel{},
		&bookingModel{},
		&bookingHistoryModel{},
		&externalBookingModel{},
		&icsSourceModel{},
		&syncLogModel{},
		&exportTokenModel{},
	)
}
