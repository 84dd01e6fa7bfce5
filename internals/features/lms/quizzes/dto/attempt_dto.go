// file: internals/features/lms/quizzes/dto/attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
	"lmsku_backend/internals/features/lms/quizzes/service"
)

/* =============================================================================
   Attempt lifecycle payloads
============================================================================= */

type SubmitAttemptRequest struct {
	Answers []service.AnswerInput `json:"answers" validate:"required,dive"`
}

// AttemptResponse is the attempt state shape with the server-computed
// countdown attached. remaining_sec is nil for untimed quizzes.
type AttemptResponse struct {
	qmodel.QuizAttemptModel
	RemainingSec *int64     `json:"remaining_sec,omitempty"`
	DeadlineAt   *time.Time `json:"deadline_at,omitempty"`
	TimeOver     bool       `json:"time_over"`
}

func ToAttemptResponse(att qmodel.QuizAttemptModel, timeLimitSec *int, now time.Time) AttemptResponse {
	resp := AttemptResponse{QuizAttemptModel: att}
	if rem := service.RemainingTime(&att, timeLimitSec, now); rem != nil {
		secs := int64(*rem / time.Second)
		resp.RemainingSec = &secs
	}
	resp.DeadlineAt = service.EffectiveDeadline(&att, timeLimitSec, now)
	resp.TimeOver = service.IsOverdue(&att, timeLimitSec, now)
	return resp
}

/* =============================================================================
   Review payloads (instructor-side essay grading)
============================================================================= */

type GradeAnswerInput struct {
	QuizAnswerID uuid.UUID `json:"quiz_answer_id" validate:"required,uuid4"`
	PointsEarned float64   `json:"points_earned" validate:"gte=0"`
	Feedback     *string   `json:"feedback" validate:"omitempty,max=2000"`
}

type ReviewAttemptRequest struct {
	Grades []GradeAnswerInput `json:"grades" validate:"required,min=1,dive"`
}

// AnswerDetail pairs an answer with its question for review screens. The
// correct option id is only filled on instructor-facing responses.
type AnswerDetail struct {
	Answer   qmodel.QuizAnswerModel `json:"answer"`
	Question PublicQuestion         `json:"question"`

	// Instructor review only; omitted on student shapes.
	CorrectOptionID *uuid.UUID `json:"correct_option_id,omitempty"`
}

type AttemptDetailResponse struct {
	Attempt AttemptResponse `json:"attempt"`
	Answers []AnswerDetail  `json:"answers"`
}
