package lookups

import (
	"log"

	"gorm.io/gorm"

	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
)

// SeedEnrollmentTypes inserts the well-known enrollment type codes if they
// are missing. Duration defaults: trial 7 days, the rest unlimited (course
// purchases and grants set expiry explicitly).
func SeedEnrollmentTypes(db *gorm.DB) {
	trialDays := 7
	rows := []lookupModel.EnrollmentTypeModel{
		{EnrollmentTypeCode: lookupModel.EnrollmentTypePurchase, EnrollmentTypeName: "Purchase"},
		{EnrollmentTypeCode: lookupModel.EnrollmentTypeSubscription, EnrollmentTypeName: "Subscription"},
		{EnrollmentTypeCode: lookupModel.EnrollmentTypeAdminGrant, EnrollmentTypeName: "Admin grant"},
		{EnrollmentTypeCode: lookupModel.EnrollmentTypeTrial, EnrollmentTypeName: "Trial", EnrollmentTypeDurationDays: &trialDays},
	}

	for _, row := range rows {
		var count int64
		if err := db.Model(&lookupModel.EnrollmentTypeModel{}).
			Where("enrollment_type_code = ?", row.EnrollmentTypeCode).
			Count(&count).Error; err != nil {
			log.Printf("[SEED] enrollment type %s: %v", row.EnrollmentTypeCode, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("[SEED] enrollment type %s: %v", row.EnrollmentTypeCode, err)
		} else {
			log.Printf("[SEED] enrollment type %s created", row.EnrollmentTypeCode)
		}
	}
}
