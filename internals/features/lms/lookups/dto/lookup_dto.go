// file: internals/features/lms/lookups/dto/lookup_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateEnrollmentTypeRequest struct {
	EnrollmentTypeCode         string `json:"enrollment_type_code" validate:"required,min=2,max=40,lowercase"`
	EnrollmentTypeName         string `json:"enrollment_type_name" validate:"required,min=2,max=80"`
	EnrollmentTypeDurationDays *int   `json:"enrollment_type_duration_days" validate:"omitempty,gt=0"`
}

type UpdateEnrollmentTypeRequest struct {
	EnrollmentTypeName         *string `json:"enrollment_type_name" validate:"omitempty,min=2,max=80"`
	EnrollmentTypeDurationDays *int    `json:"enrollment_type_duration_days" validate:"omitempty,gt=0"`
}

// BulkOpRequest toggles a batch of lookup rows. Operation must be one of
// "activate" or "deactivate"; anything else is rejected outright.
type BulkOpRequest struct {
	Operation string      `json:"operation" validate:"required"`
	IDs       []uuid.UUID `json:"ids" validate:"required,min=1,dive,uuid4"`
}
