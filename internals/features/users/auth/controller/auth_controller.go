// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	authDTO "lmsku_backend/internals/features/users/auth/dto"
	authModel "lmsku_backend/internals/features/users/auth/model"
	authService "lmsku_backend/internals/features/users/auth/service"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctl *AuthController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

func toUserResponse(u *userModel.UserModel) authDTO.UserResponse {
	return authDTO.UserResponse{
		ID:       u.ID,
		UserName: u.UserName,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
		JoinedAt: u.CreatedAt,
	}
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	// duplicate email / user_name → Conflict
	var count int64
	if err := ctl.DB.Model(&userModel.UserModel{}).
		Where("email = ? OR user_name = ?", req.Email, req.UserName).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email or username already registered")
	}

	u := userModel.UserModel{
		UserName: req.UserName,
		FullName: req.FullName,
		Email:    req.Email,
	}
	u.SetDefaultValues()
	if err := u.SetPassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := ctl.DB.Create(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "Account created", toUserResponse(&u))
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var u userModel.UserModel
	if err := ctl.DB.
		Where("email = ? OR user_name = ?", req.Identifier, req.Identifier).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !u.CheckPassword(req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	now := time.Now()
	access, err := authService.IssueAccessToken(&u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue access token")
	}
	refresh, err := authService.IssueRefreshToken(&u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(authService.RefreshTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, "Login success", authDTO.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(&u),
	})
}

// POST /api/auth/refresh-token
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := c.Cookies("refresh_token")
	if raw == "" {
		// body fallback for non-browser clients
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = body.RefreshToken
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	sub, err := authService.ParseRefreshToken(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var u userModel.UserModel
	if err := ctl.DB.Where("id = ?", sub).First(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	now := time.Now()
	access, err := authService.IssueAccessToken(&u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue access token")
	}

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": access,
	})
}

// POST /api/auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		entry := authModel.TokenBlacklist{
			Token:     raw,
			ExpiredAt: time.Now().Add(authService.AccessTTL),
		}
		if err := ctl.DB.Create(&entry).Error; err != nil {
			// duplicate logout is fine; anything else is not
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to blacklist token")
			}
		}
	}
	c.ClearCookie("refresh_token")
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var u userModel.UserModel
	if err := ctl.DB.Where("id = ?", userID).First(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "ok", toUserResponse(&u))
}
