// file: internals/features/lms/assignments/controller/assignment_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	accessService "lmsku_backend/internals/features/lms/access/service"
	asgDTO "lmsku_backend/internals/features/lms/assignments/dto"
	asgModel "lmsku_backend/internals/features/lms/assignments/model"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	helper "lmsku_backend/internals/helpers"
)

type AssignmentController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

func (ctl *AssignmentController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

/* =============================================================================
   Resolution helpers
============================================================================= */

// loadAssignmentCourse resolves assignment → section → course.
func loadAssignmentCourse(db *gorm.DB, assignmentID uuid.UUID) (*asgModel.AssignmentModel, *courseModel.CourseModel, error) {
	var asg asgModel.AssignmentModel
	if err := db.Where("assignment_id = ?", assignmentID).First(&asg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, nil, err
	}

	var section courseModel.SectionModel
	if err := db.Where("section_id = ?", asg.AssignmentSectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, nil, err
	}

	var course courseModel.CourseModel
	if err := db.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, nil, err
	}
	return &asg, &course, nil
}

func courseOwnership(c *fiber.Ctx, course *courseModel.CourseModel) error {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleAdmin {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if course.CourseInstructorID != userID {
		return fiber.NewError(fiber.StatusForbidden, "You do not own this course")
	}
	return nil
}

// courseAccess runs the enrollment gate for the calling student.
func courseAccess(db *gorm.DB, c *fiber.Ctx, course *courseModel.CourseModel, now time.Time) (accessService.Decision, error) {
	userID, role, ok := helper.GetOptionalIdentity(c)
	ident := accessService.Identity{UserID: userID, Role: role, Known: ok}

	var enr *enrollmentModel.EnrollmentModel
	typeName := ""
	if ident.Known {
		var row enrollmentModel.EnrollmentModel
		err := db.
			Where("enrollment_user_id = ? AND enrollment_course_id = ?", ident.UserID, course.CourseID).
			First(&row).Error
		switch {
		case err == nil:
			enr = &row
			var et lookupModel.EnrollmentTypeModel
			if err := db.Where("enrollment_type_id = ?", row.EnrollmentTypeID).First(&et).Error; err == nil {
				typeName = et.EnrollmentTypeCode
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return accessService.Decision{}, err
		}
	}
	return accessService.EvaluateLesson(false, course.CourseInstructorID, enr, typeName, ident, now), nil
}

/* =============================================================================
   Assignment CRUD (instructor/admin)
============================================================================= */

// POST /api/a/assignments
func (ctl *AssignmentController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req asgDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var section courseModel.SectionModel
	if err := ctl.DB.Where("section_id = ?", req.AssignmentSectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := courseOwnership(c, &course); err != nil {
		return helper.FromFiberError(c, err)
	}

	asg := asgModel.AssignmentModel{
		AssignmentSectionID:   req.AssignmentSectionID,
		AssignmentTitle:       strings.TrimSpace(req.AssignmentTitle),
		AssignmentDescription: req.AssignmentDescription,
		AssignmentDueAt:       req.AssignmentDueAt,
	}
	if req.AssignmentIsPublished != nil {
		asg.AssignmentIsPublished = *req.AssignmentIsPublished
	}
	if req.AssignmentMaxPoints != nil {
		asg.AssignmentMaxPoints = *req.AssignmentMaxPoints
	} else {
		asg.AssignmentMaxPoints = 100
	}

	if err := ctl.DB.Create(&asg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}
	return helper.JsonCreated(c, "Assignment created", asg)
}

// GET /api/u/sections/:sectionId/assignments
func (ctl *AssignmentController) ListBySection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("sectionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	var section courseModel.SectionModel
	if err := ctl.DB.Where("section_id = ?", sectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	q := ctl.DB.Model(&asgModel.AssignmentModel{}).Where("assignment_section_id = ?", sectionID)
	if courseOwnership(c, &course) != nil {
		q = q.Where("assignment_is_published = ?", true)
	}

	var assignments []asgModel.AssignmentModel
	if err := q.Order("assignment_created_at ASC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", assignments)
}

// GET /api/u/assignments/:id
func (ctl *AssignmentController) Get(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	asg, course, err := loadAssignmentCourse(ctl.DB, assignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	isOwner := courseOwnership(c, course) == nil
	if !asg.AssignmentIsPublished && !isOwner {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	if !isOwner {
		decision, err := courseAccess(ctl.DB, c, course, time.Now())
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		if !decision.CanAccess {
			return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this assignment")
		}
	}
	return helper.JsonOK(c, "ok", asg)
}

// PATCH /api/a/assignments/:id
func (ctl *AssignmentController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	asg, course, err := loadAssignmentCourse(ctl.DB, assignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := courseOwnership(c, course); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req asgDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.AssignmentTitle != nil {
		updates["assignment_title"] = strings.TrimSpace(*req.AssignmentTitle)
	}
	if req.AssignmentDescription != nil {
		updates["assignment_description"] = *req.AssignmentDescription
	}
	if req.AssignmentIsPublished != nil {
		updates["assignment_is_published"] = *req.AssignmentIsPublished
	}
	if req.AssignmentMaxPoints != nil {
		updates["assignment_max_points"] = *req.AssignmentMaxPoints
	}
	if req.AssignmentDueAt != nil {
		updates["assignment_due_at"] = *req.AssignmentDueAt
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(asg).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}
	return helper.JsonUpdated(c, "Assignment updated", asg)
}

// DELETE /api/a/assignments/:id  (soft delete)
func (ctl *AssignmentController) Delete(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	asg, course, err := loadAssignmentCourse(ctl.DB, assignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := courseOwnership(c, course); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.Delete(asg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"assignment_id": asg.AssignmentID})
}

/* =============================================================================
   Student submission flow
============================================================================= */

// POST /api/u/assignments/:id/submissions
// First call creates the submission; later calls overwrite it until the
// instructor grades it, after which resubmission is refused.
func (ctl *AssignmentController) Submit(c *fiber.Ctx) error {
	ctl.ensureValidator()

	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req asgDTO.SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	asg, course, err := loadAssignmentCourse(ctl.DB, assignmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !asg.AssignmentIsPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}

	now := time.Now()
	decision, err := courseAccess(ctl.DB, c, course, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !decision.CanAccess {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this assignment")
	}

	var existing asgModel.SubmissionModel
	err = ctl.DB.
		Where("submission_assignment_id = ? AND submission_user_id = ?", assignmentID, userID).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.IsGraded() {
			return helper.JsonError(c, fiber.StatusConflict, "Submission already graded")
		}
		if err := ctl.DB.Model(&existing).Updates(map[string]any{
			"submission_content":      strings.TrimSpace(req.SubmissionContent),
			"submission_is_late":      asg.IsLate(now),
			"submission_submitted_at": now,
		}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resubmit")
		}
		existing.SubmissionContent = strings.TrimSpace(req.SubmissionContent)
		existing.SubmissionIsLate = asg.IsLate(now)
		existing.SubmissionSubmittedAt = now
		return helper.JsonUpdated(c, "Submission updated", existing)

	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := asgModel.SubmissionModel{
			SubmissionAssignmentID: assignmentID,
			SubmissionUserID:       userID,
			SubmissionContent:      strings.TrimSpace(req.SubmissionContent),
			SubmissionIsLate:       asg.IsLate(now),
			SubmissionSubmittedAt:  now,
		}
		if err := ctl.DB.Create(&sub).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit")
		}
		return helper.JsonCreated(c, "Submission created", sub)

	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
}

// GET /api/u/assignments/:id/submissions/mine
func (ctl *AssignmentController) MySubmission(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sub asgModel.SubmissionModel
	if err := ctl.DB.
		Where("submission_assignment_id = ? AND submission_user_id = ?", assignmentID, userID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No submission yet")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", sub)
}
