package service

import (
	"testing"
	"time"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
)

func TestSweepEligible(t *testing.T) {
	limit := 600 // 10 minute quiz
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * time.Minute)
	pausedAt := start.Add(5 * time.Minute)

	tests := []struct {
		name  string
		att   qmodel.QuizAttemptModel
		limit *int
		now   time.Time
		want  bool
	}{
		{
			name:  "just past deadline stays alive",
			att:   qmodel.QuizAttemptModel{QuizAttemptStartedAt: start},
			limit: &limit,
			now:   deadline.Add(10 * time.Second),
			want:  false,
		},
		{
			name:  "at the grace boundary stays alive",
			att:   qmodel.QuizAttemptModel{QuizAttemptStartedAt: start},
			limit: &limit,
			now:   deadline.Add(AbandonGrace),
			want:  false,
		},
		{
			name:  "past the grace window is swept",
			att:   qmodel.QuizAttemptModel{QuizAttemptStartedAt: start},
			limit: &limit,
			now:   deadline.Add(AbandonGrace + time.Second),
			want:  true,
		},
		{
			name:  "paused attempt is never swept",
			att:   qmodel.QuizAttemptModel{QuizAttemptStartedAt: start, QuizAttemptPausedAt: &pausedAt},
			limit: &limit,
			now:   deadline.Add(time.Hour),
			want:  false,
		},
		{
			name: "untimed attempt is never swept",
			att:  qmodel.QuizAttemptModel{QuizAttemptStartedAt: start},
			now:  deadline.Add(time.Hour),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SweepEligible(&tt.att, tt.limit, tt.now); got != tt.want {
				t.Errorf("SweepEligible = %v, want %v", got, tt.want)
			}
		})
	}
}

// A submission a few seconds late must finalize as time_over, so inside the
// grace window the attempt is overdue for submission but not yet sweepable.
func TestLateSubmissionWindowOutlivesSweep(t *testing.T) {
	limit := 600
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	att := qmodel.QuizAttemptModel{QuizAttemptStartedAt: start}
	now := start.Add(10*time.Minute + 5*time.Second)

	if !IsOverdue(&att, &limit, now) {
		t.Fatal("attempt 5s past deadline should be overdue")
	}
	if SweepEligible(&att, &limit, now) {
		t.Error("attempt 5s past deadline must not be sweepable yet")
	}
}
