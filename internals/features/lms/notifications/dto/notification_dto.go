// file: internals/features/lms/notifications/dto/notification_dto.go
package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ==============================
   REST
============================== */

type BroadcastRequest struct {
	Roles []string       `json:"roles" validate:"required,min=1,dive,oneof=student instructor admin"`
	Title string         `json:"title" validate:"required,max=180"`
	Body  string         `json:"body" validate:"required"`
	Data  datatypes.JSON `json:"data" validate:"omitempty"`
}

/* ==============================
   Websocket client frames
============================== */

// ClientFrame is what the browser sends over /ws/notifications.
type ClientFrame struct {
	Event          string     `json:"event"` // subscribe | subscribe:admin | unsubscribe | notification:read
	Room           string     `json:"room,omitempty"`
	Role           string     `json:"role,omitempty"`
	WatchUserID    *uuid.UUID `json:"watch_user_id,omitempty"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty"`
}
