// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	userDTO "lmsku_backend/internals/features/users/user/dto"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (ctl *UserController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// PATCH /api/u/users/me
func (ctl *UserController) UpdateProfile(c *fiber.Ctx) error {
	ctl.ensureValidator()

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req userDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.UserName != nil {
		name := strings.TrimSpace(*req.UserName)
		var count int64
		if err := ctl.DB.Model(&userModel.UserModel{}).
			Where("user_name = ? AND id <> ?", name, userID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Username already taken")
		}
		updates["user_name"] = name
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	var u userModel.UserModel
	if err := ctl.DB.Where("id = ?", userID).First(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonUpdated(c, "Profile updated", u)
}

// GET /api/a/users  (admin)
func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "ok", users, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// PATCH /api/a/users/:id/active  (admin)
func (ctl *UserController) SetActive(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req userDTO.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var u userModel.UserModel
	if err := ctl.DB.Where("id = ?", c.Params("id")).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := ctl.DB.Model(&u).Update("is_active", *req.IsActive).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", fiber.Map{"id": u.ID, "is_active": *req.IsActive})
}

// PATCH /api/a/users/:id/role  (admin)
func (ctl *UserController) SetRole(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req userDTO.SetUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var u userModel.UserModel
	if err := ctl.DB.Where("id = ?", c.Params("id")).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := ctl.DB.Model(&u).Update("role", req.Role).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update role")
	}
	return helper.JsonUpdated(c, "Role updated", fiber.Map{"id": u.ID, "role": req.Role})
}
