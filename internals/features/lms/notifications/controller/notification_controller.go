// file: internals/features/lms/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	notifDTO "lmsku_backend/internals/features/lms/notifications/dto"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	helper "lmsku_backend/internals/helpers"
)

type NotificationController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (ctl *NotificationController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /api/u/notifications
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	role, _ := helper.GetUserRoleFromToken(c)

	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? OR ? = ANY(notification_roles)", userID, role)
	if c.Query("unread") == "true" {
		q = q.Where("notification_read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []notifModel.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// POST /api/u/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var n notifModel.NotificationModel
	if err := ctl.DB.Where("notification_id = ?", c.Params("id")).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if n.NotificationUserID != nil && *n.NotificationUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not your notification")
	}

	now := time.Now()
	if err := ctl.DB.Model(&n).Update("notification_read_at", now).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notification read")
	}
	return helper.JsonUpdated(c, "Notification read", fiber.Map{
		"notification_id": n.NotificationID,
		"read_at":         now,
	})
}

// POST /api/a/notifications/broadcast  (admin)
func (ctl *NotificationController) Broadcast(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req notifDTO.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	notifService.NotifyRoles(ctl.DB, req.Roles, notifModel.KindGeneral, req.Title, req.Body, req.Data)
	return helper.JsonCreated(c, "Broadcast sent", fiber.Map{"roles": req.Roles})
}
