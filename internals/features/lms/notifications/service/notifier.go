// file: internals/features/lms/notifications/service/notifier.go
package service

import (
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lmsku_backend/internals/features/lms/notifications/model"
)

// NotifyUser persists a user-targeted notification and pushes it to the
// user's room plus the admin watch rooms. Push failures are logged only:
// the row is the durable record.
func NotifyUser(db *gorm.DB, userID uuid.UUID, kind, title, body string, data datatypes.JSON) {
	n := model.NotificationModel{
		NotificationUserID: &userID,
		NotificationTitle:  title,
		NotificationBody:   body,
		NotificationKind:   kind,
		NotificationData:   data,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[NOTIFY] persist failed: %v", err)
		return
	}

	DefaultHub.Emit(UserRoom(userID), EventNotification, n)
	DefaultHub.Emit(AdminUserRoom(userID), EventAdminNotification, n)
}

// NotifyRoles persists a role broadcast and pushes it to the admin rooms.
func NotifyRoles(db *gorm.DB, roles []string, kind, title, body string, data datatypes.JSON) {
	n := model.NotificationModel{
		NotificationRoles: pq.StringArray(roles),
		NotificationTitle: title,
		NotificationBody:  body,
		NotificationKind:  kind,
		NotificationData:  data,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[NOTIFY] persist failed: %v", err)
		return
	}

	DefaultHub.Emit(AdminGeneralRoom(), EventAdminNotification, n)
	for _, role := range roles {
		DefaultHub.Emit(AdminRoleRoom(role), EventAdminNotification, n)
	}
}

// PushAdminStats emits a stats refresh hint to subscribed admins. Nothing is
// persisted; consumers re-query the REST endpoints.
func PushAdminStats(payload any) {
	DefaultHub.Emit(AdminGeneralRoom(), EventAdminStatsUpdated, payload)
}
