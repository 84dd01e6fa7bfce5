// file: internals/features/lms/enrollments/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEnrollmentRequest struct {
	EnrollmentUserID   uuid.UUID `json:"enrollment_user_id" validate:"required,uuid4"`
	EnrollmentCourseID uuid.UUID `json:"enrollment_course_id" validate:"required,uuid4"`

	// Lookup code; defaults to admin_grant.
	EnrollmentTypeCode *string `json:"enrollment_type_code" validate:"omitempty,max=40"`

	// Explicit expiry wins over the type's duration. NULL = never expires.
	EnrollmentExpiresAt *time.Time `json:"enrollment_expires_at" validate:"omitempty"`
}

type ExtendEnrollmentRequest struct {
	// New expiry; NULL clears the expiry (unlimited).
	EnrollmentExpiresAt *time.Time `json:"enrollment_expires_at"`
}
