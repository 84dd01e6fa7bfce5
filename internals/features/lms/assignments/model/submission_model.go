package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionModel holds one student's work per assignment. Resubmitting
// overwrites the row until the instructor grades it; graded_at marks the
// point of no return.
type SubmissionModel struct {
	SubmissionID           uuid.UUID `gorm:"column:submission_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submissions_assignment_user,priority:1" json:"submission_assignment_id"`
	SubmissionUserID       uuid.UUID `gorm:"column:submission_user_id;type:uuid;not null;uniqueIndex:uq_submissions_assignment_user,priority:2;index:idx_submissions_user" json:"submission_user_id"`

	SubmissionContent string `gorm:"column:submission_content;type:text;not null" json:"submission_content"`
	SubmissionIsLate  bool   `gorm:"column:submission_is_late;not null;default:false" json:"submission_is_late"`

	SubmissionPoints   *float64   `gorm:"column:submission_points;type:numeric(7,3)" json:"submission_points,omitempty"`
	SubmissionFeedback *string    `gorm:"column:submission_feedback;type:text" json:"submission_feedback,omitempty"`
	SubmissionGradedAt *time.Time `gorm:"column:submission_graded_at;type:timestamptz;index:idx_submissions_graded" json:"submission_graded_at,omitempty"`
	SubmissionGradedBy *uuid.UUID `gorm:"column:submission_graded_by;type:uuid" json:"submission_graded_by,omitempty"`

	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;type:timestamptz;not null;default:now()" json:"submission_submitted_at"`
	SubmissionCreatedAt   time.Time `gorm:"column:submission_created_at;not null;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt   time.Time `gorm:"column:submission_updated_at;not null;autoUpdateTime" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string {
	return "assignment_submissions"
}

func (m *SubmissionModel) IsGraded() bool {
	return m.SubmissionGradedAt != nil
}
