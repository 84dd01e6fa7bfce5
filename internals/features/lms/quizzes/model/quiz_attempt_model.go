package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* =============================================================================
   ENUM-like: Attempt status ('in_progress','submitted','abandoned')
============================================================================= */

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

func (s AttemptStatus) String() string { return string(s) }
func (s AttemptStatus) Valid() bool {
	switch s {
	case AttemptInProgress, AttemptSubmitted, AttemptAbandoned:
		return true
	default:
		return false
	}
}

// sql.Scanner + driver.Valuer
func (s *AttemptStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AttemptStatus(v)
	case []byte:
		*s = AttemptStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for AttemptStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid AttemptStatus: %q", *s)
	}
	return nil
}
func (s AttemptStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid AttemptStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: quiz_attempts
   The timer is server-authoritative: the effective deadline is
   started_at + time_limit + paused time, checked at submission and by the
   background sweeper. Pausing freezes elapsed time server-side.
============================================================================= */

type QuizAttemptModel struct {
	QuizAttemptID     uuid.UUID `gorm:"column:quiz_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_attempt_id"`
	// at most one open attempt per (quiz, user); concurrent starts lose the
	// race at the index, not in application code
	QuizAttemptQuizID uuid.UUID `gorm:"column:quiz_attempt_quiz_id;type:uuid;not null;index:idx_quiz_attempts_quiz_user,priority:1;uniqueIndex:uq_quiz_attempts_open,where:quiz_attempt_status = 'in_progress',priority:1" json:"quiz_attempt_quiz_id"`
	QuizAttemptUserID uuid.UUID `gorm:"column:quiz_attempt_user_id;type:uuid;not null;index:idx_quiz_attempts_quiz_user,priority:2;index:idx_quiz_attempts_user;uniqueIndex:uq_quiz_attempts_open,where:quiz_attempt_status = 'in_progress',priority:2" json:"quiz_attempt_user_id"`

	QuizAttemptNumber int `gorm:"column:quiz_attempt_number;not null;default:1" json:"quiz_attempt_number"`

	QuizAttemptScore    float64 `gorm:"column:quiz_attempt_score;type:numeric(7,3);not null;default:0" json:"quiz_attempt_score"`
	QuizAttemptMaxScore float64 `gorm:"column:quiz_attempt_max_score;type:numeric(7,3);not null;default:0" json:"quiz_attempt_max_score"`
	QuizAttemptIsPassed bool    `gorm:"column:quiz_attempt_is_passed;not null;default:false" json:"quiz_attempt_is_passed"`

	QuizAttemptStatus AttemptStatus `gorm:"column:quiz_attempt_status;type:varchar(16);not null;default:'in_progress';index:idx_quiz_attempts_status" json:"quiz_attempt_status"`

	QuizAttemptStartedAt   time.Time  `gorm:"column:quiz_attempt_started_at;type:timestamptz;not null;default:now()" json:"quiz_attempt_started_at"`
	QuizAttemptCompletedAt *time.Time `gorm:"column:quiz_attempt_completed_at;type:timestamptz" json:"quiz_attempt_completed_at,omitempty"`

	// Pause bookkeeping: paused_at set while frozen, paused_ms accumulates.
	QuizAttemptPausedAt *time.Time `gorm:"column:quiz_attempt_paused_at;type:timestamptz" json:"quiz_attempt_paused_at,omitempty"`
	QuizAttemptPausedMs int64      `gorm:"column:quiz_attempt_paused_ms;not null;default:0" json:"quiz_attempt_paused_ms"`

	QuizAttemptCreatedAt time.Time `gorm:"column:quiz_attempt_created_at;not null;autoCreateTime" json:"quiz_attempt_created_at"`
	QuizAttemptUpdatedAt time.Time `gorm:"column:quiz_attempt_updated_at;not null;autoUpdateTime" json:"quiz_attempt_updated_at"`
}

func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}

func (m *QuizAttemptModel) IsOpen() bool {
	return m.QuizAttemptStatus == AttemptInProgress && m.QuizAttemptCompletedAt == nil
}

func (m *QuizAttemptModel) IsPaused() bool {
	return m.QuizAttemptPausedAt != nil
}

// MarkSubmitted finalizes the attempt with a score.
func (m *QuizAttemptModel) MarkSubmitted(score, maxScore float64, passed bool, at time.Time) {
	m.QuizAttemptStatus = AttemptSubmitted
	m.QuizAttemptScore = score
	m.QuizAttemptMaxScore = maxScore
	m.QuizAttemptIsPassed = passed
	m.QuizAttemptCompletedAt = &at
	m.QuizAttemptPausedAt = nil
}
