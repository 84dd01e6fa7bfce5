// file: internals/features/lms/quizzes/dto/quiz_dto.go
package dto

import (
	"github.com/google/uuid"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
)

/* =============================================================================
   Quiz requests
============================================================================= */

type CreateQuizRequest struct {
	QuizSectionID    uuid.UUID `json:"quiz_section_id" validate:"required,uuid4"`
	QuizTitle        string    `json:"quiz_title" validate:"required,min=3,max=180"`
	QuizDescription  *string   `json:"quiz_description" validate:"omitempty,max=2000"`
	QuizIsPublished  *bool     `json:"quiz_is_published"`
	QuizPassingScore *float64  `json:"quiz_passing_score" validate:"omitempty,gte=0,lte=100"`
	QuizTimeLimitSec *int      `json:"quiz_time_limit_sec" validate:"omitempty,gt=0"`
	QuizMaxAttempts  *int      `json:"quiz_max_attempts" validate:"omitempty,gt=0"`
}

type UpdateQuizRequest struct {
	QuizTitle        *string  `json:"quiz_title" validate:"omitempty,min=3,max=180"`
	QuizDescription  *string  `json:"quiz_description" validate:"omitempty,max=2000"`
	QuizIsPublished  *bool    `json:"quiz_is_published"`
	QuizPassingScore *float64 `json:"quiz_passing_score" validate:"omitempty,gte=0,lte=100"`
	QuizTimeLimitSec *int     `json:"quiz_time_limit_sec" validate:"omitempty,gt=0"`
	QuizMaxAttempts  *int     `json:"quiz_max_attempts" validate:"omitempty,gt=0"`
}

/* =============================================================================
   Question requests
   Options come in as plain text, the server assigns option ids and stores
   which one is correct in a column the student-facing shape never exposes.
============================================================================= */

type QuestionOptionInput struct {
	OptionText string `json:"option_text" validate:"required,min=1,max=500"`
	IsCorrect  bool   `json:"is_correct"`
}

type CreateQuestionRequest struct {
	QuizQuestionType     qmodel.QuestionType   `json:"quiz_question_type" validate:"required,oneof=multiple_choice true_false essay"`
	QuizQuestionText     string                `json:"quiz_question_text" validate:"required,min=1"`
	QuizQuestionPoints   *float64              `json:"quiz_question_points" validate:"omitempty,gt=0"`
	QuizQuestionPosition *int                  `json:"quiz_question_position" validate:"omitempty,gte=0"`
	Options              []QuestionOptionInput `json:"options" validate:"omitempty,dive"`
}

type UpdateQuestionRequest struct {
	QuizQuestionText     *string               `json:"quiz_question_text" validate:"omitempty,min=1"`
	QuizQuestionPoints   *float64              `json:"quiz_question_points" validate:"omitempty,gt=0"`
	QuizQuestionPosition *int                  `json:"quiz_question_position" validate:"omitempty,gte=0"`
	Options              []QuestionOptionInput `json:"options" validate:"omitempty,dive"`
}

/* =============================================================================
   Student-facing question shape (no correct option, no grading metadata)
============================================================================= */

type PublicQuestion struct {
	QuizQuestionID       uuid.UUID               `json:"quiz_question_id"`
	QuizQuestionType     qmodel.QuestionType     `json:"quiz_question_type"`
	QuizQuestionText     string                  `json:"quiz_question_text"`
	QuizQuestionPoints   float64                 `json:"quiz_question_points"`
	QuizQuestionPosition int                     `json:"quiz_question_position"`
	Options              []qmodel.QuestionOption `json:"options,omitempty"`
}

func ToPublicQuestion(q qmodel.QuizQuestionModel, options []qmodel.QuestionOption) PublicQuestion {
	return PublicQuestion{
		QuizQuestionID:       q.QuizQuestionID,
		QuizQuestionType:     q.QuizQuestionType,
		QuizQuestionText:     q.QuizQuestionText,
		QuizQuestionPoints:   q.QuizQuestionPoints,
		QuizQuestionPosition: q.QuizQuestionPosition,
		Options:              options,
	}
}
