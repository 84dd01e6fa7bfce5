// file: internals/features/lms/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	AssignmentSectionID   uuid.UUID  `json:"assignment_section_id" validate:"required,uuid4"`
	AssignmentTitle       string     `json:"assignment_title" validate:"required,min=3,max=180"`
	AssignmentDescription *string    `json:"assignment_description" validate:"omitempty,max=5000"`
	AssignmentIsPublished *bool      `json:"assignment_is_published"`
	AssignmentMaxPoints   *float64   `json:"assignment_max_points" validate:"omitempty,gt=0"`
	AssignmentDueAt       *time.Time `json:"assignment_due_at"`
}

type UpdateAssignmentRequest struct {
	AssignmentTitle       *string    `json:"assignment_title" validate:"omitempty,min=3,max=180"`
	AssignmentDescription *string    `json:"assignment_description" validate:"omitempty,max=5000"`
	AssignmentIsPublished *bool      `json:"assignment_is_published"`
	AssignmentMaxPoints   *float64   `json:"assignment_max_points" validate:"omitempty,gt=0"`
	AssignmentDueAt       *time.Time `json:"assignment_due_at"`
}

type SubmitAssignmentRequest struct {
	SubmissionContent string `json:"submission_content" validate:"required,min=1"`
}

type GradeSubmissionRequest struct {
	Points   float64 `json:"points" validate:"gte=0"`
	Feedback *string `json:"feedback" validate:"omitempty,max=5000"`
}
