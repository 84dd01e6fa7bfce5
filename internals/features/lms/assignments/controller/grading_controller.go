// file: internals/features/lms/assignments/controller/grading_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	asgDTO "lmsku_backend/internals/features/lms/assignments/dto"
	asgModel "lmsku_backend/internals/features/lms/assignments/model"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	helper "lmsku_backend/internals/helpers"
)

// GradingController is the instructor side of submissions.
type GradingController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewGradingController(db *gorm.DB) *GradingController {
	return &GradingController{DB: db}
}

func (ctl *GradingController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /api/a/submissions/pending?courseId=...
// Ungraded submissions across the caller's courses, newest first, capped
// at 100 so the grading queue stays a queue.
func (ctl *GradingController) GetPendingSubmissions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := ctl.DB.Model(&asgModel.SubmissionModel{}).
		Joins("JOIN assignments ON assignments.assignment_id = assignment_submissions.submission_assignment_id AND assignments.assignment_deleted_at IS NULL").
		Joins("JOIN course_sections ON course_sections.section_id = assignments.assignment_section_id").
		Joins("JOIN courses ON courses.course_id = course_sections.section_course_id").
		Where("assignment_submissions.submission_graded_at IS NULL")
	if role != constants.RoleAdmin {
		q = q.Where("courses.course_instructor_id = ?", userID)
	}
	if raw := c.Query("courseId"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
		}
		q = q.Where("courses.course_id = ?", courseID)
	}

	var submissions []asgModel.SubmissionModel
	if err := q.Order("assignment_submissions.submission_submitted_at DESC").
		Limit(100).
		Find(&submissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", submissions)
}

// GET /api/a/assignments/:id/submissions
func (ctl *GradingController) ListByAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	_, course, err := loadAssignmentCourse(ctl.DB, assignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := courseOwnership(c, course); err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&asgModel.SubmissionModel{}).
		Where("submission_assignment_id = ?", assignmentID)
	if c.Query("pending") == "true" {
		q = q.Where("submission_graded_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var submissions []asgModel.SubmissionModel
	if err := q.Order("submission_submitted_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&submissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", submissions, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// POST /api/a/submissions/:id/grade
// Ownership is checked along submission → assignment → section → course,
// so an instructor can only grade work on their own courses.
func (ctl *GradingController) GradeSubmission(c *fiber.Ctx) error {
	ctl.ensureValidator()

	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}
	graderID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sub asgModel.SubmissionModel
	if err := ctl.DB.Where("submission_id = ?", submissionID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	asg, course, err := loadAssignmentCourse(ctl.DB, sub.SubmissionAssignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := courseOwnership(c, course); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req asgDTO.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	points := req.Points
	if points > asg.AssignmentMaxPoints {
		points = asg.AssignmentMaxPoints
	}

	now := time.Now()
	if err := ctl.DB.Model(&sub).Updates(map[string]any{
		"submission_points":    points,
		"submission_feedback":  req.Feedback,
		"submission_graded_at": now,
		"submission_graded_by": graderID,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}
	sub.SubmissionPoints = &points
	sub.SubmissionFeedback = req.Feedback
	sub.SubmissionGradedAt = &now
	sub.SubmissionGradedBy = &graderID

	data, _ := json.Marshal(fiber.Map{
		"submission_id": sub.SubmissionID,
		"assignment_id": asg.AssignmentID,
	})
	notifService.NotifyUser(ctl.DB, sub.SubmissionUserID,
		notifModel.KindGraded,
		"Assignment graded",
		"Your assignment has been graded: "+asg.AssignmentTitle,
		datatypes.JSON(data))

	return helper.JsonUpdated(c, "Submission graded", sub)
}
