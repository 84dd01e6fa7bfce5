// file: internals/features/lms/courses/controller/section_controller.go
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

type SectionController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

func (ctl *SectionController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// sectionCourseID resolves the owning course of a section.
func sectionCourseID(db *gorm.DB, sectionID uuid.UUID) (uuid.UUID, error) {
	var s courseModel.SectionModel
	if err := db.Where("section_id = ?", sectionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return uuid.Nil, err
	}
	return s.SectionCourseID, nil
}

// POST /api/a/sections
func (ctl *SectionController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req courseDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	if _, err := ensureCourseOwner(ctl.DB, c, req.SectionCourseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	section := courseModel.SectionModel{
		SectionCourseID: req.SectionCourseID,
		SectionTitle:    strings.TrimSpace(req.SectionTitle),
	}
	if req.SectionPosition != nil {
		section.SectionPosition = *req.SectionPosition
	}

	if err := ctl.DB.Create(&section).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create section")
	}
	return helper.JsonCreated(c, "Section created", section)
}

// GET /api/public/courses/:courseId/sections
func (ctl *SectionController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var sections []courseModel.SectionModel
	if err := ctl.DB.
		Where("section_course_id = ?", courseID).
		Order("section_position ASC, section_created_at ASC").
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", sections)
}

// PATCH /api/a/sections/:id
func (ctl *SectionController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}
	courseID, err := sectionCourseID(ctl.DB, sectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ensureCourseOwner(ctl.DB, c, courseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req courseDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.SectionTitle != nil {
		updates["section_title"] = strings.TrimSpace(*req.SectionTitle)
	}
	if req.SectionPosition != nil {
		updates["section_position"] = *req.SectionPosition
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&courseModel.SectionModel{}).
		Where("section_id = ?", sectionID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update section")
	}
	return helper.JsonUpdated(c, "Section updated", fiber.Map{"section_id": sectionID})
}

// DELETE /api/a/sections/:id
func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}
	courseID, err := sectionCourseID(ctl.DB, sectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ensureCourseOwner(ctl.DB, c, courseID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.
		Where("section_id = ?", sectionID).
		Delete(&courseModel.SectionModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete section")
	}
	return helper.JsonDeleted(c, "Section deleted", fiber.Map{"section_id": sectionID})
}
