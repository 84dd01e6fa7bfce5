package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	qmodel "lmsku_backend/internals/features/lms/quizzes/model"
)

func objQuestion(points float64, correct uuid.UUID) qmodel.QuizQuestionModel {
	return qmodel.QuizQuestionModel{
		QuizQuestionID:              uuid.New(),
		QuizQuestionType:            qmodel.QuestionMultipleChoice,
		QuizQuestionPoints:          points,
		QuizQuestionCorrectOptionID: &correct,
	}
}

func essayQuestion(points float64) qmodel.QuizQuestionModel {
	return qmodel.QuizQuestionModel{
		QuizQuestionID:     uuid.New(),
		QuizQuestionType:   qmodel.QuestionEssay,
		QuizQuestionPoints: points,
	}
}

func TestScoreAttempt(t *testing.T) {
	correctA := uuid.New()
	correctB := uuid.New()
	wrong := uuid.New()

	q1 := objQuestion(2, correctA)
	q2 := objQuestion(3, correctB)
	q3 := essayQuestion(5)

	questions := []qmodel.QuizQuestionModel{q1, q2, q3}

	text := "my essay"
	answers := []AnswerInput{
		{QuestionID: q1.QuizQuestionID, SelectedOptionID: &correctA},
		{QuestionID: q2.QuizQuestionID, SelectedOptionID: &wrong},
		{QuestionID: q3.QuizQuestionID, AnswerText: &text},
	}

	score, maxScore, rows := ScoreAttempt(questions, answers)

	if score != 2 {
		t.Errorf("score = %v, want 2", score)
	}
	if maxScore != 10 {
		t.Errorf("maxScore = %v, want 10", maxScore)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	if !rows[0].QuizAnswerIsCorrect || rows[0].QuizAnswerPointsEarned != 2 || !rows[0].QuizAnswerIsGraded {
		t.Errorf("correct objective row = %+v", rows[0])
	}
	if rows[1].QuizAnswerIsCorrect || rows[1].QuizAnswerPointsEarned != 0 || !rows[1].QuizAnswerIsGraded {
		t.Errorf("wrong objective row = %+v", rows[1])
	}
	if rows[2].QuizAnswerIsGraded || rows[2].QuizAnswerPointsEarned != 0 {
		t.Errorf("essay row should be ungraded with 0 points, got %+v", rows[2])
	}
	if rows[2].QuizAnswerText == nil || *rows[2].QuizAnswerText != text {
		t.Errorf("essay text not preserved: %+v", rows[2])
	}
}

func TestScoreAttemptUnansweredAndUnknown(t *testing.T) {
	correct := uuid.New()
	q := objQuestion(4, correct)

	// one unanswered question, one answer to a question not in the quiz
	answers := []AnswerInput{
		{QuestionID: uuid.New(), SelectedOptionID: &correct},
	}

	score, maxScore, rows := ScoreAttempt([]qmodel.QuizQuestionModel{q}, answers)

	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
	if maxScore != 4 {
		t.Errorf("maxScore = %v, want 4", maxScore)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0 (stray answers dropped)", len(rows))
	}
}

func TestIsPassed(t *testing.T) {
	tests := []struct {
		name         string
		score, max   float64
		passingScore float64
		want         bool
	}{
		{"exact threshold passes", 60, 100, 60, true},
		{"just below fails", 59.9, 100, 60, false},
		{"above passes", 90, 100, 60, true},
		{"zero max never passes", 0, 0, 0, false},
		{"zero threshold with answers", 0, 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPassed(tt.score, tt.max, tt.passingScore); got != tt.want {
				t.Errorf("IsPassed(%v, %v, %v) = %v, want %v",
					tt.score, tt.max, tt.passingScore, got, tt.want)
			}
		})
	}
}

func TestEffectiveDeadline(t *testing.T) {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limit := 600 // 10 minutes

	t.Run("untimed quiz has no deadline", func(t *testing.T) {
		att := &qmodel.QuizAttemptModel{QuizAttemptStartedAt: started}
		if d := EffectiveDeadline(att, nil, started); d != nil {
			t.Errorf("deadline = %v, want nil", d)
		}
	})

	t.Run("plain deadline", func(t *testing.T) {
		att := &qmodel.QuizAttemptModel{QuizAttemptStartedAt: started}
		d := EffectiveDeadline(att, &limit, started)
		want := started.Add(10 * time.Minute)
		if d == nil || !d.Equal(want) {
			t.Errorf("deadline = %v, want %v", d, want)
		}
	})

	t.Run("accumulated pauses extend deadline", func(t *testing.T) {
		att := &qmodel.QuizAttemptModel{
			QuizAttemptStartedAt: started,
			QuizAttemptPausedMs:  120_000, // 2 minutes paused earlier
		}
		d := EffectiveDeadline(att, &limit, started.Add(5*time.Minute))
		want := started.Add(12 * time.Minute)
		if d == nil || !d.Equal(want) {
			t.Errorf("deadline = %v, want %v", d, want)
		}
	})

	t.Run("ongoing pause keeps extending", func(t *testing.T) {
		pausedAt := started.Add(3 * time.Minute)
		att := &qmodel.QuizAttemptModel{
			QuizAttemptStartedAt: started,
			QuizAttemptPausedAt:  &pausedAt,
		}
		now := pausedAt.Add(4 * time.Minute)
		d := EffectiveDeadline(att, &limit, now)
		want := started.Add(14 * time.Minute) // 10 + 4 paused so far
		if d == nil || !d.Equal(want) {
			t.Errorf("deadline = %v, want %v", d, want)
		}
		// while paused, remaining time is frozen at 7 minutes
		rem := RemainingTime(att, &limit, now)
		if rem == nil || *rem != 7*time.Minute {
			t.Errorf("remaining = %v, want 7m", rem)
		}
	})
}

func TestIsOverdue(t *testing.T) {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limit := 60

	att := &qmodel.QuizAttemptModel{QuizAttemptStartedAt: started}

	if IsOverdue(att, &limit, started.Add(59*time.Second)) {
		t.Error("attempt overdue before deadline")
	}
	if !IsOverdue(att, &limit, started.Add(61*time.Second)) {
		t.Error("attempt not overdue after deadline")
	}
	if IsOverdue(att, nil, started.Add(24*time.Hour)) {
		t.Error("untimed attempt reported overdue")
	}

	rem := RemainingTime(att, &limit, started.Add(2*time.Minute))
	if rem == nil || *rem != 0 {
		t.Errorf("remaining after deadline = %v, want 0", rem)
	}
}
