// file: internals/features/lms/quizzes/service/sweeper.go
package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
)

// StartAttemptSweeper launches a background loop that abandons timed
// attempts still open past their effective deadline. Submission also checks
// the deadline, so the sweeper only mops up attempts the client walked away
// from.
func StartAttemptSweeper(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := SweepOverdueAttempts(db, time.Now()); err != nil {
				log.Printf("[SWEEPER] failed to sweep quiz attempts: %v", err)
			} else if n > 0 {
				log.Printf("[SWEEPER] abandoned %d overdue quiz attempt(s)", n)
			}
		}
	}()
}

// AbandonGrace is how long past the effective deadline the sweep leaves an
// attempt alone. A submission that lands inside the window still finalizes
// with its answers (flagged time_over) instead of losing a race to the sweep
// and bouncing off the already-closed attempt.
const AbandonGrace = 30 * time.Second

// SweepOverdueAttempts marks in-progress attempts past deadline + grace as
// abandoned. Paused attempts never expire: their deadline keeps moving with
// the pause.
func SweepOverdueAttempts(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Exec(`
		UPDATE quiz_attempts qa
		SET quiz_attempt_status = ?,
		    quiz_attempt_completed_at = ?,
		    quiz_attempt_updated_at = ?
		FROM quizzes q
		WHERE q.quiz_id = qa.quiz_attempt_quiz_id
		  AND qa.quiz_attempt_status = ?
		  AND qa.quiz_attempt_paused_at IS NULL
		  AND q.quiz_time_limit_sec IS NOT NULL
		  AND qa.quiz_attempt_started_at
		      + make_interval(secs => q.quiz_time_limit_sec)
		      + make_interval(secs => qa.quiz_attempt_paused_ms / 1000.0)
		      < ?`,
		qmodel.AttemptAbandoned, now, now, qmodel.AttemptInProgress, now.Add(-AbandonGrace))
	return res.RowsAffected, res.Error
}

// SweepEligible is the in-process form of the sweep predicate: a timed,
// unpaused attempt whose deadline passed more than AbandonGrace ago.
func SweepEligible(att *qmodel.QuizAttemptModel, timeLimitSec *int, now time.Time) bool {
	if att.IsPaused() {
		return false
	}
	deadline := EffectiveDeadline(att, timeLimitSec, now)
	if deadline == nil {
		return false
	}
	return now.Sub(*deadline) > AbandonGrace
}
