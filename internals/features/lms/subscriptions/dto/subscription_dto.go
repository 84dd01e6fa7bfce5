// file: internals/features/lms/subscriptions/dto/subscription_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =============================================================================
   Plan management (admin)
============================================================================= */

type CreatePlanRequest struct {
	PlanName         string      `json:"plan_name" validate:"required,min=3,max=120"`
	PlanDescription  *string     `json:"plan_description" validate:"omitempty,max=2000"`
	PlanPrice        int64       `json:"plan_price" validate:"required,gt=0"`
	PlanDurationDays int         `json:"plan_duration_days" validate:"required,gt=0"`
	PlanFeatures     []string    `json:"plan_features" validate:"omitempty,dive,min=1,max=200"`
	PlanCourseIDs    []uuid.UUID `json:"plan_course_ids" validate:"omitempty,dive,uuid4"`
}

type UpdatePlanRequest struct {
	PlanName         *string     `json:"plan_name" validate:"omitempty,min=3,max=120"`
	PlanDescription  *string     `json:"plan_description" validate:"omitempty,max=2000"`
	PlanPrice        *int64      `json:"plan_price" validate:"omitempty,gt=0"`
	PlanDurationDays *int        `json:"plan_duration_days" validate:"omitempty,gt=0"`
	PlanFeatures     []string    `json:"plan_features" validate:"omitempty,dive,min=1,max=200"`
	PlanIsActive     *bool       `json:"plan_is_active"`
	PlanCourseIDs    []uuid.UUID `json:"plan_course_ids" validate:"omitempty,dive,uuid4"`
}

/* =============================================================================
   Checkout
============================================================================= */

type CheckoutRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required,uuid4"`
}
