package seeds

import (
	"gorm.io/gorm"

	lookups "lmsku_backend/internals/seeds/lookups"
)

// RunAllSeeds is idempotent: every seeder skips rows that already exist.
func RunAllSeeds(db *gorm.DB) {
	lookups.SeedEnrollmentTypes(db)
}
