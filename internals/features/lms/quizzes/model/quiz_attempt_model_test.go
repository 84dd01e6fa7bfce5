package model

import (
	"reflect"
	"strings"
	"testing"
)

// Two racing starts must collide on the schema, so both key columns have to
// declare the partial unique index over open attempts.
func TestOpenAttemptUniqueIndexDeclared(t *testing.T) {
	typ := reflect.TypeOf(QuizAttemptModel{})
	for _, name := range []string{"QuizAttemptQuizID", "QuizAttemptUserID"} {
		f, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("field %s missing from QuizAttemptModel", name)
		}
		tag := f.Tag.Get("gorm")
		if !strings.Contains(tag, "uniqueIndex:uq_quiz_attempts_open") {
			t.Errorf("%s does not carry uq_quiz_attempts_open", name)
		}
		if !strings.Contains(tag, "where:quiz_attempt_status = 'in_progress'") {
			t.Errorf("%s index is not partial over in_progress attempts", name)
		}
	}
}
