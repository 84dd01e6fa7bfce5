// file: internals/features/lms/access/controller/access_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accessService "lmsku_backend/internals/features/lms/access/service"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	helper "lmsku_backend/internals/helpers"
)

type AccessController struct {
	DB *gorm.DB
}

func NewAccessController(db *gorm.DB) *AccessController {
	return &AccessController{DB: db}
}

/* =============================================================================
   Row loading
============================================================================= */

type lessonWithCourse struct {
	Lesson courseModel.LessonModel
	Course courseModel.CourseModel
}

// loadLessonWithCourse resolves lesson → section → course, all non-deleted.
func (ctl *AccessController) loadLessonWithCourse(lessonID uuid.UUID) (*lessonWithCourse, error) {
	var lesson courseModel.LessonModel
	if err := ctl.DB.Where("lesson_id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, err
	}

	var section courseModel.SectionModel
	if err := ctl.DB.Where("section_id = ?", lesson.LessonSectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, err
	}

	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, err
	}

	return &lessonWithCourse{Lesson: lesson, Course: course}, nil
}

// loadEnrollment fetches the user's non-deleted enrollment in a course.
// Returns (nil, "", nil) when no enrollment exists.
func (ctl *AccessController) loadEnrollment(userID, courseID uuid.UUID) (*enrollmentModel.EnrollmentModel, string, error) {
	var enr enrollmentModel.EnrollmentModel
	if err := ctl.DB.
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&enr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}

	typeName := ""
	var et lookupModel.EnrollmentTypeModel
	if err := ctl.DB.
		Where("enrollment_type_id = ?", enr.EnrollmentTypeID).
		First(&et).Error; err == nil {
		typeName = et.EnrollmentTypeCode
	}
	return &enr, typeName, nil
}

func identityFromCtx(c *fiber.Ctx) accessService.Identity {
	userID, role, ok := helper.GetOptionalIdentity(c)
	return accessService.Identity{UserID: userID, Role: role, Known: ok}
}

/* =============================================================================
   Handlers
============================================================================= */

// GET /api/u/lessons/:id/access-check
func (ctl *AccessController) CheckLessonAccess(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	lc, err := ctl.loadLessonWithCourse(lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ident := identityFromCtx(c)

	var enr *enrollmentModel.EnrollmentModel
	typeName := ""
	if ident.Known {
		enr, typeName, err = ctl.loadEnrollment(ident.UserID, lc.Course.CourseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
	}

	decision := accessService.EvaluateLesson(
		lc.Lesson.LessonIsPreview,
		lc.Course.CourseInstructorID,
		enr, typeName, ident, time.Now(),
	)
	return helper.JsonOK(c, "ok", decision)
}

// GET /api/u/lessons/:id  — lesson content, enrollment-gated
func (ctl *AccessController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	lc, err := ctl.loadLessonWithCourse(lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ident := identityFromCtx(c)

	var enr *enrollmentModel.EnrollmentModel
	typeName := ""
	if ident.Known {
		enr, typeName, err = ctl.loadEnrollment(ident.UserID, lc.Course.CourseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
	}

	decision := accessService.EvaluateLesson(
		lc.Lesson.LessonIsPreview,
		lc.Course.CourseInstructorID,
		enr, typeName, ident, time.Now(),
	)
	if !decision.CanAccess {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this lesson")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"lesson": lc.Lesson,
		"access": decision,
	})
}

// publicLesson is the public-safe per-lesson annotation: content withheld.
type publicLesson struct {
	LessonID        uuid.UUID            `json:"lesson_id"`
	LessonSectionID uuid.UUID            `json:"lesson_section_id"`
	LessonTitle     string               `json:"lesson_title"`
	LessonPosition  int                  `json:"lesson_position"`
	LessonIsPreview bool                 `json:"lesson_is_preview"`
	CanAccess       bool                 `json:"can_access"`
	AccessReason    accessService.Reason `json:"access_reason"`
}

// GET /api/public/courses/:courseId/lessons
// Batch variant: one enrollment lookup for the whole course, same precedence
// applied per lesson. Anonymous callers collapse to can_access = is_preview.
func (ctl *AccessController) GetCourseLessons(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var lessons []courseModel.LessonModel
	if err := ctl.DB.
		Joins("JOIN course_sections ON course_sections.section_id = lessons.lesson_section_id AND course_sections.section_deleted_at IS NULL").
		Where("course_sections.section_course_id = ?", courseID).
		Order("course_sections.section_position ASC, lessons.lesson_position ASC").
		Find(&lessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	ident := identityFromCtx(c)

	// enrollment lookup once per course, not per lesson
	var enr *enrollmentModel.EnrollmentModel
	typeName := ""
	if ident.Known {
		enr, typeName, err = ctl.loadEnrollment(ident.UserID, courseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
	}

	now := time.Now()
	out := make([]publicLesson, 0, len(lessons))
	for _, l := range lessons {
		d := accessService.EvaluateLesson(
			l.LessonIsPreview, course.CourseInstructorID, enr, typeName, ident, now,
		)
		out = append(out, publicLesson{
			LessonID:        l.LessonID,
			LessonSectionID: l.LessonSectionID,
			LessonTitle:     l.LessonTitle,
			LessonPosition:  l.LessonPosition,
			LessonIsPreview: l.LessonIsPreview,
			CanAccess:       d.CanAccess,
			AccessReason:    d.Reason,
		})
	}

	return helper.JsonOK(c, "ok", out)
}
