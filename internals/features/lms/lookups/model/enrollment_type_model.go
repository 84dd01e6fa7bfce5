package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentTypeModel is a lookup row: how an enrollment was granted
// (purchase, subscription, admin grant, trial, ...).
type EnrollmentTypeModel struct {
	EnrollmentTypeID   uuid.UUID `gorm:"column:enrollment_type_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_type_id"`
	EnrollmentTypeCode string    `gorm:"column:enrollment_type_code;type:varchar(40);not null;uniqueIndex:uq_enrollment_types_code" json:"enrollment_type_code"`
	EnrollmentTypeName string    `gorm:"column:enrollment_type_name;type:varchar(80);not null" json:"enrollment_type_name"`

	// Default validity in days granted by this type; NULL = unlimited.
	EnrollmentTypeDurationDays *int `gorm:"column:enrollment_type_duration_days" json:"enrollment_type_duration_days,omitempty"`

	EnrollmentTypeIsActive bool `gorm:"column:enrollment_type_is_active;not null;default:true" json:"enrollment_type_is_active"`

	EnrollmentTypeCreatedAt time.Time      `gorm:"column:enrollment_type_created_at;not null;autoCreateTime" json:"enrollment_type_created_at"`
	EnrollmentTypeUpdatedAt time.Time      `gorm:"column:enrollment_type_updated_at;not null;autoUpdateTime" json:"enrollment_type_updated_at"`
	EnrollmentTypeDeletedAt gorm.DeletedAt `gorm:"column:enrollment_type_deleted_at;index" json:"enrollment_type_deleted_at,omitempty"`
}

func (EnrollmentTypeModel) TableName() string {
	return "enrollment_types"
}

// Well-known type codes (seeded).
const (
	EnrollmentTypePurchase     = "purchase"
	EnrollmentTypeSubscription = "subscription"
	EnrollmentTypeAdminGrant   = "admin_grant"
	EnrollmentTypeTrial        = "trial"
)
