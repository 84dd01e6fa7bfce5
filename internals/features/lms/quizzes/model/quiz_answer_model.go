package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizAnswerModel is one answer row within an attempt. Created at submission;
// mutated only by the essay grading workflow.
type QuizAnswerModel struct {
	QuizAnswerID         uuid.UUID `gorm:"column:quiz_answer_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_answer_id"`
	QuizAnswerAttemptID  uuid.UUID `gorm:"column:quiz_answer_attempt_id;type:uuid;not null;index:idx_quiz_answers_attempt" json:"quiz_answer_attempt_id"`
	QuizAnswerQuestionID uuid.UUID `gorm:"column:quiz_answer_question_id;type:uuid;not null" json:"quiz_answer_question_id"`

	// Objective answers carry a selected option, essays carry text.
	QuizAnswerSelectedOptionID *uuid.UUID `gorm:"column:quiz_answer_selected_option_id;type:uuid" json:"quiz_answer_selected_option_id,omitempty"`
	QuizAnswerText             *string    `gorm:"column:quiz_answer_text;type:text" json:"quiz_answer_text,omitempty"`

	QuizAnswerIsCorrect    bool    `gorm:"column:quiz_answer_is_correct;not null;default:false" json:"quiz_answer_is_correct"`
	QuizAnswerPointsEarned float64 `gorm:"column:quiz_answer_points_earned;type:numeric(7,3);not null;default:0" json:"quiz_answer_points_earned"`

	// Essays stay is_graded=false until an instructor reviews them.
	QuizAnswerIsGraded bool    `gorm:"column:quiz_answer_is_graded;not null;default:false" json:"quiz_answer_is_graded"`
	QuizAnswerFeedback *string `gorm:"column:quiz_answer_feedback;type:text" json:"quiz_answer_feedback,omitempty"`

	QuizAnswerCreatedAt time.Time `gorm:"column:quiz_answer_created_at;not null;autoCreateTime" json:"quiz_answer_created_at"`
	QuizAnswerUpdatedAt time.Time `gorm:"column:quiz_answer_updated_at;not null;autoUpdateTime" json:"quiz_answer_updated_at"`
}

func (QuizAnswerModel) TableName() string {
	return "quiz_answers"
}
