package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"lmsku_backend/internals/constants"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
)

func TestEvaluateLesson(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	instructorID := uuid.New()
	studentID := uuid.New()

	active := func(expiresAt *time.Time) *enrollmentModel.EnrollmentModel {
		return &enrollmentModel.EnrollmentModel{
			EnrollmentID:        uuid.New(),
			EnrollmentUserID:    studentID,
			EnrollmentCourseID:  uuid.New(),
			EnrollmentExpiresAt: expiresAt,
		}
	}
	in5d := now.Add(5 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		isPreview  bool
		enr        *enrollmentModel.EnrollmentModel
		ident      Identity
		wantAccess bool
		wantReason Reason
		wantDays   *int
		wantExp    bool
	}{
		{
			name:       "admin always allowed",
			ident:      Identity{UserID: uuid.New(), Role: constants.RoleAdmin, Known: true},
			wantAccess: true,
			wantReason: ReasonAdmin,
		},
		{
			name:       "owning instructor allowed",
			ident:      Identity{UserID: instructorID, Role: constants.RoleInstructor, Known: true},
			wantAccess: true,
			wantReason: ReasonInstructor,
		},
		{
			name:       "preview allowed without enrollment",
			isPreview:  true,
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: true,
			wantReason: ReasonPreview,
		},
		{
			name:       "preview beats expired enrollment",
			isPreview:  true,
			enr:        active(&past),
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: true,
			wantReason: ReasonPreview,
		},
		{
			name:       "anonymous non-preview denied",
			ident:      Identity{},
			wantAccess: false,
			wantReason: ReasonDenied,
		},
		{
			name:       "anonymous preview allowed",
			isPreview:  true,
			ident:      Identity{},
			wantAccess: true,
			wantReason: ReasonPreview,
		},
		{
			name:       "student without enrollment denied",
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: false,
			wantReason: ReasonDenied,
		},
		{
			name:       "expired enrollment denied with annotation",
			enr:        active(&past),
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: false,
			wantReason: ReasonDenied,
			wantDays:   intPtr(0),
			wantExp:    true,
		},
		{
			name:       "enrollment expiring in 5 days",
			enr:        active(&in5d),
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: true,
			wantReason: ReasonEnrolled,
			wantDays:   intPtr(5),
		},
		{
			name:       "unlimited enrollment has no days_remaining",
			enr:        active(nil),
			ident:      Identity{UserID: studentID, Role: constants.RoleStudent, Known: true},
			wantAccess: true,
			wantReason: ReasonEnrolled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateLesson(tt.isPreview, instructorID, tt.enr, "purchase", tt.ident, now)
			if d.CanAccess != tt.wantAccess {
				t.Errorf("CanAccess = %v, want %v", d.CanAccess, tt.wantAccess)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
			if tt.wantDays == nil {
				if d.Enrollment != nil && d.Enrollment.DaysRemaining != nil {
					t.Errorf("DaysRemaining = %d, want nil", *d.Enrollment.DaysRemaining)
				}
			} else {
				if d.Enrollment == nil || d.Enrollment.DaysRemaining == nil {
					t.Fatalf("DaysRemaining missing, want %d", *tt.wantDays)
				}
				if *d.Enrollment.DaysRemaining != *tt.wantDays {
					t.Errorf("DaysRemaining = %d, want %d", *d.Enrollment.DaysRemaining, *tt.wantDays)
				}
			}
			if d.Enrollment != nil && d.Enrollment.IsExpired != tt.wantExp {
				t.Errorf("IsExpired = %v, want %v", d.Enrollment.IsExpired, tt.wantExp)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		exp  time.Time
		want int
	}{
		{name: "exactly 5 days", exp: now.Add(5 * 24 * time.Hour), want: 5},
		{name: "5 days and an hour rounds up", exp: now.Add(5*24*time.Hour + time.Hour), want: 6},
		{name: "one minute left rounds up to a day", exp: now.Add(time.Minute), want: 1},
		{name: "already past", exp: now.Add(-time.Minute), want: 0},
		{name: "exactly now", exp: now, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.exp, now); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
