package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentModel struct {
	AssignmentID        uuid.UUID `gorm:"column:assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	AssignmentSectionID uuid.UUID `gorm:"column:assignment_section_id;type:uuid;not null;index:idx_assignments_section" json:"assignment_section_id"`

	AssignmentTitle       string  `gorm:"column:assignment_title;type:varchar(180);not null" json:"assignment_title"`
	AssignmentDescription *string `gorm:"column:assignment_description" json:"assignment_description,omitempty"`
	AssignmentIsPublished bool    `gorm:"column:assignment_is_published;not null;default:false" json:"assignment_is_published"`

	AssignmentMaxPoints float64 `gorm:"column:assignment_max_points;type:numeric(7,3);not null;default:100" json:"assignment_max_points"`

	// NULL = no deadline. Late submissions are accepted and flagged.
	AssignmentDueAt *time.Time `gorm:"column:assignment_due_at;type:timestamptz" json:"assignment_due_at,omitempty"`

	AssignmentCreatedAt time.Time      `gorm:"column:assignment_created_at;not null;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time      `gorm:"column:assignment_updated_at;not null;autoUpdateTime" json:"assignment_updated_at"`
	AssignmentDeletedAt gorm.DeletedAt `gorm:"column:assignment_deleted_at;index" json:"assignment_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (AssignmentModel) TableName() string {
	return "assignments"
}

// IsLate reports whether a submission at the given instant misses the due
// date. No due date means never late.
func (m *AssignmentModel) IsLate(at time.Time) bool {
	return m.AssignmentDueAt != nil && at.After(*m.AssignmentDueAt)
}
