// file: internals/features/lms/courses/controller/lesson_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseDTO "lmsku_backend/internals/features/lms/courses/dto"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	helper "lmsku_backend/internals/helpers"
)

type LessonController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

func (ctl *LessonController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// lessonCourseID resolves lesson → section → course.
func lessonCourseID(db *gorm.DB, lessonID uuid.UUID) (uuid.UUID, error) {
	var l courseModel.LessonModel
	if err := db.Where("lesson_id = ?", lessonID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return uuid.Nil, err
	}
	return sectionCourseID(db, l.LessonSectionID)
}

// POST /api/a/lessons
func (ctl *LessonController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req courseDTO.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	courseID, err := sectionCourseID(ctl.DB, req.LessonSectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ensureCourseOwner(ctl.DB, c, courseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	lesson := courseModel.LessonModel{
		LessonSectionID: req.LessonSectionID,
		LessonTitle:     strings.TrimSpace(req.LessonTitle),
		LessonContent:   req.LessonContent,
		LessonVideoURL:  req.LessonVideoURL,
	}
	if req.LessonPosition != nil {
		lesson.LessonPosition = *req.LessonPosition
	}
	if req.LessonIsPreview != nil {
		lesson.LessonIsPreview = *req.LessonIsPreview
	}

	if err := ctl.DB.Create(&lesson).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}
	return helper.JsonCreated(c, "Lesson created", lesson)
}

// PATCH /api/a/lessons/:id
func (ctl *LessonController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}
	courseID, err := lessonCourseID(ctl.DB, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ensureCourseOwner(ctl.DB, c, courseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req courseDTO.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.LessonTitle != nil {
		updates["lesson_title"] = strings.TrimSpace(*req.LessonTitle)
	}
	if req.LessonContent != nil {
		updates["lesson_content"] = *req.LessonContent
	}
	if req.LessonVideoURL != nil {
		updates["lesson_video_url"] = *req.LessonVideoURL
	}
	if req.LessonPosition != nil {
		updates["lesson_position"] = *req.LessonPosition
	}
	if req.LessonIsPreview != nil {
		updates["lesson_is_preview"] = *req.LessonIsPreview
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&courseModel.LessonModel{}).
		Where("lesson_id = ?", lessonID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}
	return helper.JsonUpdated(c, "Lesson updated", fiber.Map{"lesson_id": lessonID})
}

// DELETE /api/a/lessons/:id
func (ctl *LessonController) Delete(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}
	courseID, err := lessonCourseID(ctl.DB, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ensureCourseOwner(ctl.DB, c, courseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.
		Where("lesson_id = ?", lessonID).
		Delete(&courseModel.LessonModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	return helper.JsonDeleted(c, "Lesson deleted", fiber.Map{"lesson_id": lessonID})
}
