// file: internals/features/lms/access/service/access_service.go
package service

import (
	"time"

	"github.com/google/uuid"

	"lmsku_backend/internals/constants"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
)

/* =============================================================================
   Access reasons
============================================================================= */

type Reason string

const (
	ReasonAdmin      Reason = "admin"
	ReasonInstructor Reason = "instructor"
	ReasonPreview    Reason = "preview"
	ReasonEnrolled   Reason = "enrolled"
	ReasonDenied     Reason = "denied"
)

/* =============================================================================
   Decision shapes
============================================================================= */

// EnrollmentInfo is the public-safe enrollment annotation returned on access
// checks. DaysRemaining is nil when the enrollment never expires.
type EnrollmentInfo struct {
	EnrollmentID   uuid.UUID  `json:"enrollment_id"`
	EnrollmentType string     `json:"enrollment_type"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	DaysRemaining  *int       `json:"days_remaining,omitempty"`
	IsExpired      bool       `json:"is_expired"`
}

type Decision struct {
	CanAccess  bool            `json:"can_access"`
	Reason     Reason          `json:"reason"`
	Enrollment *EnrollmentInfo `json:"enrollment,omitempty"`
}

// Identity is the requester; Known=false means an anonymous request.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Known  bool
}

/* =============================================================================
   Evaluator
   Precedence (first match wins):
     admin → instructor → preview → non-expired enrollment → denied
============================================================================= */

// EvaluateLesson decides lesson access from already-loaded rows. Expiry is
// evaluated against the supplied instant on every call, never pre-computed.
func EvaluateLesson(
	lessonIsPreview bool,
	courseInstructorID uuid.UUID,
	enr *enrollmentModel.EnrollmentModel,
	enrollmentType string,
	ident Identity,
	now time.Time,
) Decision {
	if ident.Known {
		if ident.Role == constants.RoleAdmin {
			return Decision{CanAccess: true, Reason: ReasonAdmin}
		}
		if ident.UserID == courseInstructorID {
			return Decision{CanAccess: true, Reason: ReasonInstructor}
		}
	}

	if lessonIsPreview {
		return Decision{CanAccess: true, Reason: ReasonPreview}
	}

	if !ident.Known || enr == nil {
		return Decision{CanAccess: false, Reason: ReasonDenied}
	}

	info := EnrollmentInfo{
		EnrollmentID:   enr.EnrollmentID,
		EnrollmentType: enrollmentType,
		ExpiresAt:      enr.EnrollmentExpiresAt,
	}

	if enr.IsExpired(now) {
		zero := 0
		info.IsExpired = true
		info.DaysRemaining = &zero
		return Decision{CanAccess: false, Reason: ReasonDenied, Enrollment: &info}
	}

	if enr.EnrollmentExpiresAt != nil {
		d := DaysRemaining(*enr.EnrollmentExpiresAt, now)
		info.DaysRemaining = &d
	}
	return Decision{CanAccess: true, Reason: ReasonEnrolled, Enrollment: &info}
}

// DaysRemaining = ceil((expiresAt - now) / 24h), floored at 0.
func DaysRemaining(expiresAt, now time.Time) int {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
