// file: internals/features/lms/quizzes/service/attempt_service.go
package service

import (
	"time"

	"github.com/google/uuid"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
)

/* =============================================================================
   Inputs
============================================================================= */

// AnswerInput is one submitted answer. Objective questions fill
// SelectedOptionID, essays fill AnswerText.
type AnswerInput struct {
	QuestionID       uuid.UUID  `json:"question_id" validate:"required,uuid4"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id" validate:"omitempty,uuid4"`
	AnswerText       *string    `json:"answer_text" validate:"omitempty"`
}

/* =============================================================================
   Scoring
   Pure function of (questions, answers) → score. Objective questions are
   compared against the stored correct option; essays persist ungraded with
   zero points until manual review.
============================================================================= */

func ScoreAttempt(questions []qmodel.QuizQuestionModel, answers []AnswerInput) (score, maxScore float64, rows []qmodel.QuizAnswerModel) {
	byQuestion := make(map[uuid.UUID]AnswerInput, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	rows = make([]qmodel.QuizAnswerModel, 0, len(questions))
	for _, q := range questions {
		maxScore += q.QuizQuestionPoints

		a, answered := byQuestion[q.QuizQuestionID]
		if !answered {
			continue // unanswered questions score 0 and produce no row
		}

		row := qmodel.QuizAnswerModel{
			QuizAnswerQuestionID:       q.QuizQuestionID,
			QuizAnswerSelectedOptionID: a.SelectedOptionID,
			QuizAnswerText:             a.AnswerText,
		}

		if q.QuizQuestionType.IsObjective() {
			row.QuizAnswerIsGraded = true
			if a.SelectedOptionID != nil && q.QuizQuestionCorrectOptionID != nil &&
				*a.SelectedOptionID == *q.QuizQuestionCorrectOptionID {
				row.QuizAnswerIsCorrect = true
				row.QuizAnswerPointsEarned = q.QuizQuestionPoints
				score += q.QuizQuestionPoints
			}
		}
		// essays: is_graded=false, points_earned=0 until manual grading

		rows = append(rows, row)
	}
	return score, maxScore, rows
}

// IsPassed applies the percent threshold: score/maxScore*100 >= passingScore.
// An empty quiz (maxScore 0) never passes.
func IsPassed(score, maxScore, passingScore float64) bool {
	if maxScore <= 0 {
		return false
	}
	return score/maxScore*100 >= passingScore
}

/* =============================================================================
   Deadline
============================================================================= */

// EffectiveDeadline computes the server-authoritative deadline of an attempt.
// Returns nil for untimed quizzes. Paused time (finished pauses plus an
// ongoing one) extends the deadline by exactly its duration.
func EffectiveDeadline(att *qmodel.QuizAttemptModel, timeLimitSec *int, now time.Time) *time.Time {
	if timeLimitSec == nil || *timeLimitSec <= 0 {
		return nil
	}
	paused := time.Duration(att.QuizAttemptPausedMs) * time.Millisecond
	if att.QuizAttemptPausedAt != nil && now.After(*att.QuizAttemptPausedAt) {
		paused += now.Sub(*att.QuizAttemptPausedAt)
	}
	deadline := att.QuizAttemptStartedAt.
		Add(time.Duration(*timeLimitSec) * time.Second).
		Add(paused)
	return &deadline
}

// RemainingTime is the countdown exposed to clients; zero when overdue,
// nil when untimed.
func RemainingTime(att *qmodel.QuizAttemptModel, timeLimitSec *int, now time.Time) *time.Duration {
	deadline := EffectiveDeadline(att, timeLimitSec, now)
	if deadline == nil {
		return nil
	}
	d := deadline.Sub(now)
	if d < 0 {
		d = 0
	}
	return &d
}

// IsOverdue reports whether the attempt has run past its deadline.
func IsOverdue(att *qmodel.QuizAttemptModel, timeLimitSec *int, now time.Time) bool {
	deadline := EffectiveDeadline(att, timeLimitSec, now)
	return deadline != nil && now.After(*deadline)
}
