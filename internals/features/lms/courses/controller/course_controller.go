// file: internals/features/lms/courses/controller/course_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	courseDTO "lmsku_backend/internals/features/lms/courses/dto"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	helper "lmsku_backend/internals/helpers"
)

type CourseController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

func (ctl *CourseController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// ensureCourseOwner loads a course and checks the caller owns it (admin bypasses).
func ensureCourseOwner(db *gorm.DB, c *fiber.Ctx, courseID uuid.UUID) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel
	if err := db.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return nil, err
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return nil, err
	}
	if role == constants.RoleAdmin {
		return &course, nil
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	if course.CourseInstructorID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not own this course")
	}
	return &course, nil
}

// POST /api/a/courses  (instructor/admin)
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	base := ""
	if req.CourseSlug != nil {
		base = helper.GenerateSlug(*req.CourseSlug)
	}
	if base == "" {
		base = helper.GenerateSlug(req.CourseTitle)
	}
	slug, err := helper.EnsureUniqueSlug(ctl.DB, base, "courses", "course_slug")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	course := courseModel.CourseModel{
		CourseInstructorID: userID,
		CourseTitle:        strings.TrimSpace(req.CourseTitle),
		CourseSlug:         slug,
		CourseDescription:  req.CourseDescription,
	}
	if req.CourseIsPublished != nil {
		course.CourseIsPublished = *req.CourseIsPublished
	}

	if err := ctl.DB.Create(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}
	return helper.JsonCreated(c, "Course created", course)
}

// GET /api/public/courses
func (ctl *CourseController) ListPublic(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&courseModel.CourseModel{}).
		Where("course_is_published = ?", true)
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("LOWER(course_title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var courses []courseModel.CourseModel
	if err := q.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", courses, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /api/public/courses/:slug
func (ctl *CourseController) GetBySlug(c *fiber.Ctx) error {
	var course courseModel.CourseModel
	if err := ctl.DB.
		Where("course_slug = ? AND course_is_published = ?", c.Params("slug"), true).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", course)
}

// GET /api/a/courses  (instructor: own courses; admin: all)
func (ctl *CourseController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&courseModel.CourseModel{})
	if role != constants.RoleAdmin {
		q = q.Where("course_instructor_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var courses []courseModel.CourseModel
	if err := q.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", courses, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// PATCH /api/a/courses/:id
func (ctl *CourseController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}
	course, err := ensureCourseOwner(ctl.DB, c, courseID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.CourseTitle != nil {
		updates["course_title"] = strings.TrimSpace(*req.CourseTitle)
	}
	if req.CourseDescription != nil {
		updates["course_description"] = *req.CourseDescription
	}
	if req.CourseIsPublished != nil {
		updates["course_is_published"] = *req.CourseIsPublished
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(course).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}
	return helper.JsonUpdated(c, "Course updated", course)
}

// DELETE /api/a/courses/:id  (soft delete)
func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}
	course, err := ensureCourseOwner(ctl.DB, c, courseID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.Delete(course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{"course_id": course.CourseID})
}
