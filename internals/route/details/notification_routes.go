package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "lmsku_backend/internals/features/lms/notifications/controller"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func NotificationUserRoutes(private fiber.Router, db *gorm.DB) {
	ctl := notifController.NewNotificationController(db)

	private.Get("/notifications", ctl.ListMine)
	private.Patch("/notifications/:id/read", ctl.MarkRead)
}

func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := notifController.NewNotificationController(db)

	admin.Post("/notifications/broadcast", adminOnly("broadcasts"), ctl.Broadcast)
}

// WebSocketRoutes mounts the realtime endpoint: HTTP upgrade guarded, token
// required, then handed to the hub.
func WebSocketRoutes(app *fiber.App, db *gorm.DB) {
	app.Use("/ws/notifications", notifController.UpgradeGuard(), authMiddleware.AuthMiddleware(db))
	app.Get("/ws/notifications", notifController.WSHandler(db))
}
