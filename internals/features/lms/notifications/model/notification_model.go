package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationModel is the durable notification row. The websocket relay is
// best-effort push; REST over these rows is the source of truth.
type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`

	// User-targeted; NULL for role broadcasts.
	NotificationUserID *uuid.UUID `gorm:"column:notification_user_id;type:uuid;index:idx_notifications_user" json:"notification_user_id,omitempty"`

	// Role broadcast audience, e.g. {admin} or {admin,instructor}.
	NotificationRoles pq.StringArray `gorm:"column:notification_roles;type:text[]" json:"notification_roles,omitempty"`

	NotificationTitle string         `gorm:"column:notification_title;type:varchar(180);not null" json:"notification_title"`
	NotificationBody  string         `gorm:"column:notification_body;type:text;not null" json:"notification_body"`
	NotificationKind  string         `gorm:"column:notification_kind;type:varchar(40);not null;default:'general'" json:"notification_kind"`
	NotificationData  datatypes.JSON `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`

	NotificationReadAt *time.Time `gorm:"column:notification_read_at;type:timestamptz" json:"notification_read_at,omitempty"`

	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;not null;autoCreateTime" json:"notification_created_at"`
	NotificationDeletedAt gorm.DeletedAt `gorm:"column:notification_deleted_at;index" json:"notification_deleted_at,omitempty"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// Notification kinds used by the fan-out callers.
const (
	KindGeneral          = "general"
	KindGraded           = "graded"
	KindEnrollment       = "enrollment"
	KindSubscription     = "subscription"
	KindAttemptFinalized = "attempt_finalized"
)
