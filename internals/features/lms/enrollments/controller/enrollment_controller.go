// file: internals/features/lms/enrollments/controller/enrollment_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	enrollmentDTO "lmsku_backend/internals/features/lms/enrollments/dto"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	helper "lmsku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

func (ctl *EnrollmentController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GrantEnrollment creates an enrollment inside a transaction, re-checking the
// one-active-per-(user,course) invariant. Shared with the subscription webhook.
func GrantEnrollment(tx *gorm.DB, userID, courseID uuid.UUID, typeCode string, expiresAt *time.Time) (*enrollmentModel.EnrollmentModel, error) {
	var et lookupModel.EnrollmentTypeModel
	if err := tx.Where("enrollment_type_code = ? AND enrollment_type_is_active = ?", typeCode, true).
		First(&et).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown enrollment type")
		}
		return nil, err
	}

	var count int64
	if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "User already enrolled in this course")
	}

	if expiresAt == nil && et.EnrollmentTypeDurationDays != nil {
		t := time.Now().Add(time.Duration(*et.EnrollmentTypeDurationDays) * 24 * time.Hour)
		expiresAt = &t
	}

	enr := enrollmentModel.EnrollmentModel{
		EnrollmentUserID:    userID,
		EnrollmentCourseID:  courseID,
		EnrollmentTypeID:    et.EnrollmentTypeID,
		EnrollmentExpiresAt: expiresAt,
	}
	if err := tx.Create(&enr).Error; err != nil {
		return nil, err
	}
	return &enr, nil
}

// POST /api/a/enrollments  (admin, or instructor for an owned course)
func (ctl *EnrollmentController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req enrollmentDTO.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	// ownership: admin may grant anywhere, instructor only on own courses
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", req.EnrollmentCourseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if role != constants.RoleAdmin {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if course.CourseInstructorID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "You do not own this course")
		}
	}

	typeCode := lookupModel.EnrollmentTypeAdminGrant
	if req.EnrollmentTypeCode != nil {
		typeCode = *req.EnrollmentTypeCode
	}

	var enr *enrollmentModel.EnrollmentModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		enr, txErr = GrantEnrollment(tx, req.EnrollmentUserID, req.EnrollmentCourseID, typeCode, req.EnrollmentExpiresAt)
		return txErr
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	data, _ := json.Marshal(fiber.Map{"course_id": course.CourseID})
	notifService.NotifyUser(ctl.DB, req.EnrollmentUserID, notifModel.KindEnrollment,
		"Enrolled",
		fmt.Sprintf("You now have access to %q", course.CourseTitle),
		datatypes.JSON(data),
	)

	return helper.JsonCreated(c, "Enrollment created", enr)
}

// GET /api/u/enrollments/me
func (ctl *EnrollmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []enrollmentModel.EnrollmentModel
	if err := ctl.DB.
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_enrolled_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/a/courses/:courseId/enrollments
func (ctl *EnrollmentController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if role != constants.RoleAdmin {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if course.CourseInstructorID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "You do not own this course")
		}
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_course_id = ?", courseID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var rows []enrollmentModel.EnrollmentModel
	if err := q.Order("enrollment_enrolled_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// PATCH /api/a/enrollments/:id  (extend / clear expiry)
func (ctl *EnrollmentController) Extend(c *fiber.Ctx) error {
	var enr enrollmentModel.EnrollmentModel
	if err := ctl.DB.Where("enrollment_id = ?", c.Params("id")).First(&enr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var req enrollmentDTO.ExtendEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	if err := ctl.DB.Model(&enr).
		Update("enrollment_expires_at", req.EnrollmentExpiresAt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment")
	}
	return helper.JsonUpdated(c, "Enrollment updated", fiber.Map{
		"enrollment_id":         enr.EnrollmentID,
		"enrollment_expires_at": req.EnrollmentExpiresAt,
	})
}

// DELETE /api/a/enrollments/:id  (soft delete)
func (ctl *EnrollmentController) Delete(c *fiber.Ctx) error {
	var enr enrollmentModel.EnrollmentModel
	if err := ctl.DB.Where("enrollment_id = ?", c.Params("id")).First(&enr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := ctl.DB.Delete(&enr).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete enrollment")
	}
	return helper.JsonDeleted(c, "Enrollment removed", fiber.Map{"enrollment_id": enr.EnrollmentID})
}
