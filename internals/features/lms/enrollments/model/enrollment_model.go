package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentModel grants a user timed or permanent access to a course.
// One active enrollment per (user, course): partial unique index below.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	EnrollmentUserID   uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course,where:enrollment_deleted_at IS NULL,priority:1;index:idx_enrollments_user" json:"enrollment_user_id"`
	EnrollmentCourseID uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course,where:enrollment_deleted_at IS NULL,priority:2;index:idx_enrollments_course" json:"enrollment_course_id"`

	EnrollmentTypeID uuid.UUID `gorm:"column:enrollment_type_id;type:uuid;not null" json:"enrollment_type_id"`

	EnrollmentEnrolledAt time.Time  `gorm:"column:enrollment_enrolled_at;type:timestamptz;not null;default:now()" json:"enrollment_enrolled_at"`
	// NULL = never expires. Evaluated at request time, never pre-computed.
	EnrollmentExpiresAt *time.Time `gorm:"column:enrollment_expires_at;type:timestamptz" json:"enrollment_expires_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;not null;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;not null;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// IsExpired reports whether the enrollment has lapsed at the given instant.
func (m *EnrollmentModel) IsExpired(now time.Time) bool {
	return m.EnrollmentExpiresAt != nil && m.EnrollmentExpiresAt.Before(now)
}
