// file: internals/features/lms/lookups/controller/enrollment_type_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lookupDTO "lmsku_backend/internals/features/lms/lookups/dto"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	helper "lmsku_backend/internals/helpers"
)

type EnrollmentTypeController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewEnrollmentTypeController(db *gorm.DB) *EnrollmentTypeController {
	return &EnrollmentTypeController{DB: db}
}

func (ctl *EnrollmentTypeController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /api/a/enrollment-types
func (ctl *EnrollmentTypeController) List(c *fiber.Ctx) error {
	var rows []lookupModel.EnrollmentTypeModel
	if err := ctl.DB.Order("enrollment_type_code ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/enrollment-types  (admin)
func (ctl *EnrollmentTypeController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req lookupDTO.CreateEnrollmentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var count int64
	if err := ctl.DB.Model(&lookupModel.EnrollmentTypeModel{}).
		Where("enrollment_type_code = ?", req.EnrollmentTypeCode).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Enrollment type code already exists")
	}

	row := lookupModel.EnrollmentTypeModel{
		EnrollmentTypeCode:         req.EnrollmentTypeCode,
		EnrollmentTypeName:         strings.TrimSpace(req.EnrollmentTypeName),
		EnrollmentTypeDurationDays: req.EnrollmentTypeDurationDays,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create enrollment type")
	}
	return helper.JsonCreated(c, "Enrollment type created", row)
}

// PATCH /api/a/enrollment-types/:id  (admin)
func (ctl *EnrollmentTypeController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment type id")
	}

	var req lookupDTO.UpdateEnrollmentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var row lookupModel.EnrollmentTypeModel
	if err := ctl.DB.First(&row, "enrollment_type_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment type not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if req.EnrollmentTypeName != nil {
		row.EnrollmentTypeName = strings.TrimSpace(*req.EnrollmentTypeName)
	}
	if req.EnrollmentTypeDurationDays != nil {
		row.EnrollmentTypeDurationDays = req.EnrollmentTypeDurationDays
	}

	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment type")
	}
	return helper.JsonUpdated(c, "Enrollment type updated", row)
}

// POST /api/a/enrollment-types/bulk  (admin)
// Toggles is_active for a batch of rows. Unknown operations never reach the
// database.
func (ctl *EnrollmentTypeController) BulkOp(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req lookupDTO.BulkOpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var active bool
	switch req.Operation {
	case "activate":
		active = true
	case "deactivate":
		active = false
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bulk operation")
	}

	res := ctl.DB.Model(&lookupModel.EnrollmentTypeModel{}).
		Where("enrollment_type_id IN ?", req.IDs).
		Update("enrollment_type_is_active", active)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment types")
	}
	return helper.JsonUpdated(c, "Enrollment types updated", fiber.Map{
		"operation": req.Operation,
		"affected":  res.RowsAffected,
	})
}
