// file: internals/features/lms/notifications/controller/ws_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	notifDTO "lmsku_backend/internals/features/lms/notifications/dto"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
)

// UpgradeGuard rejects plain HTTP on the websocket path.
func UpgradeGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WSHandler serves /ws/notifications. Identity comes from the auth
// middleware via Locals; the connection auto-joins the user's own room.
//
// Client events: subscribe, subscribe:admin, unsubscribe, notification:read.
func WSHandler(db *gorm.DB) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		hub := notifService.DefaultHub

		// all frames leave through sock; the hub fans out from request
		// goroutines while this loop writes error frames, and the transport
		// tolerates only one writer at a time.
		sock := notifService.NewSafeConn(conn)
		defer hub.Drop(sock)

		userIDStr, _ := conn.Locals("user_id").(string)
		role, _ := conn.Locals("user_role").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			_ = sock.WriteJSON(notifService.Event{Event: "error", Payload: "unauthenticated"})
			return
		}

		// every authenticated socket listens on its own room
		hub.Subscribe(sock, notifService.UserRoom(userID))

		for {
			var frame notifDTO.ClientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}

			switch frame.Event {
			case "subscribe":
				// re-join own room (idempotent); explicit rooms are ignored
				// for non-admins so a client cannot listen on another user.
				hub.Subscribe(sock, notifService.UserRoom(userID))

			case "subscribe:admin":
				if role != constants.RoleAdmin {
					_ = sock.WriteJSON(notifService.Event{Event: "error", Payload: "admin only"})
					continue
				}
				switch {
				case frame.WatchUserID != nil:
					hub.Subscribe(sock, notifService.AdminUserRoom(*frame.WatchUserID))
				case frame.Role != "":
					hub.Subscribe(sock, notifService.AdminRoleRoom(frame.Role))
				default:
					hub.Subscribe(sock, notifService.AdminGeneralRoom())
				}

			case "unsubscribe":
				if frame.Room != "" && frame.Room != notifService.UserRoom(userID) {
					hub.Unsubscribe(sock, frame.Room)
				}

			case "notification:read":
				if frame.NotificationID == nil {
					continue
				}
				now := time.Now()
				if err := db.Model(&notifModel.NotificationModel{}).
					Where("notification_id = ? AND notification_user_id = ?", *frame.NotificationID, userID).
					Update("notification_read_at", now).Error; err != nil {
					log.Printf("[WS] notification:read failed: %v", err)
				}

			default:
				_ = sock.WriteJSON(notifService.Event{Event: "error", Payload: "unknown event"})
			}
		}
	})
}
