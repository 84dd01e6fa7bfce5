package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	QuizID        uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_id"`
	QuizSectionID uuid.UUID `gorm:"column:quiz_section_id;type:uuid;not null;index:idx_quizzes_section" json:"quiz_section_id"`

	QuizTitle       string  `gorm:"column:quiz_title;type:varchar(180);not null" json:"quiz_title"`
	QuizDescription *string `gorm:"column:quiz_description" json:"quiz_description,omitempty"`
	QuizIsPublished bool    `gorm:"column:quiz_is_published;not null;default:false" json:"quiz_is_published"`

	// Percent threshold for is_passed, 0..100.
	QuizPassingScore float64 `gorm:"column:quiz_passing_score;type:numeric(5,2);not null;default:60" json:"quiz_passing_score"`

	// NULL = untimed.
	QuizTimeLimitSec *int `gorm:"column:quiz_time_limit_sec" json:"quiz_time_limit_sec,omitempty"`

	// Attempts allowed per student; NULL = unlimited.
	QuizMaxAttempts *int `gorm:"column:quiz_max_attempts" json:"quiz_max_attempts,omitempty"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;not null;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (QuizModel) TableName() string {
	return "quizzes"
}
