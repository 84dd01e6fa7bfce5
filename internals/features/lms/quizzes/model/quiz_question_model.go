package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Question type ('multiple_choice','true_false','essay')
============================================================================= */

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionEssay          QuestionType = "essay"
)

func (t QuestionType) String() string { return string(t) }
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionEssay:
		return true
	default:
		return false
	}
}

// IsObjective reports whether the question is auto-scored.
func (t QuestionType) IsObjective() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

// sql.Scanner + driver.Valuer
func (t *QuestionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}
func (t QuestionType) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

/* =============================================================================
   Options payload (jsonb)
============================================================================= */

// QuestionOption is one entry of the options jsonb array. The correct option
// id lives in a separate column and is never serialized to students.
type QuestionOption struct {
	OptionID   uuid.UUID `json:"option_id"`
	OptionText string    `json:"option_text"`
}

/* =============================================================================
   MODEL: quiz_questions
============================================================================= */

type QuizQuestionModel struct {
	QuizQuestionID     uuid.UUID    `gorm:"column:quiz_question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_question_id"`
	QuizQuestionQuizID uuid.UUID    `gorm:"column:quiz_question_quiz_id;type:uuid;not null;index:idx_quiz_questions_quiz" json:"quiz_question_quiz_id"`
	QuizQuestionType   QuestionType `gorm:"column:quiz_question_type;type:varchar(20);not null" json:"quiz_question_type"`

	QuizQuestionText   string  `gorm:"column:quiz_question_text;type:text;not null" json:"quiz_question_text"`
	QuizQuestionPoints float64 `gorm:"column:quiz_question_points;type:numeric(7,3);not null;default:1" json:"quiz_question_points"`

	// Objective questions only; NULL for essays.
	QuizQuestionOptions         datatypes.JSON `gorm:"column:quiz_question_options;type:jsonb" json:"quiz_question_options,omitempty"`
	QuizQuestionCorrectOptionID *uuid.UUID     `gorm:"column:quiz_question_correct_option_id;type:uuid" json:"-"`

	QuizQuestionPosition int `gorm:"column:quiz_question_position;not null;default:0" json:"quiz_question_position"`

	QuizQuestionCreatedAt time.Time      `gorm:"column:quiz_question_created_at;not null;autoCreateTime" json:"quiz_question_created_at"`
	QuizQuestionUpdatedAt time.Time      `gorm:"column:quiz_question_updated_at;not null;autoUpdateTime" json:"quiz_question_updated_at"`
	QuizQuestionDeletedAt gorm.DeletedAt `gorm:"column:quiz_question_deleted_at;index" json:"quiz_question_deleted_at,omitempty"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}
