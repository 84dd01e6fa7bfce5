package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* =============================================================================
   ENUM-like: Subscription status ('pending','active','expired','cancelled')
============================================================================= */

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string { return string(s) }
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionPending, SubscriptionActive, SubscriptionExpired, SubscriptionCancelled:
		return true
	default:
		return false
	}
}

// sql.Scanner + driver.Valuer
func (s *SubscriptionStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for SubscriptionStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid SubscriptionStatus: %q", *s)
	}
	return nil
}
func (s SubscriptionStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid SubscriptionStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: subscriptions
   Payment flows through Midtrans Snap: a pending row carries the order id,
   the webhook flips it to active and stamps the validity window.
============================================================================= */

type SubscriptionModel struct {
	SubscriptionID     uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"subscription_id"`
	SubscriptionUserID uuid.UUID `gorm:"column:subscription_user_id;type:uuid;not null;index:idx_subscriptions_user" json:"subscription_user_id"`
	SubscriptionPlanID uuid.UUID `gorm:"column:subscription_plan_id;type:uuid;not null;index:idx_subscriptions_plan" json:"subscription_plan_id"`

	SubscriptionOrderID string `gorm:"column:subscription_order_id;type:varchar(64);not null;uniqueIndex:uq_subscriptions_order" json:"subscription_order_id"`

	SubscriptionStatus SubscriptionStatus `gorm:"column:subscription_status;type:varchar(16);not null;default:'pending';index:idx_subscriptions_status" json:"subscription_status"`

	SubscriptionStartedAt *time.Time `gorm:"column:subscription_started_at;type:timestamptz" json:"subscription_started_at,omitempty"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at;type:timestamptz" json:"subscription_expires_at,omitempty"`

	SubscriptionCreatedAt time.Time `gorm:"column:subscription_created_at;not null;autoCreateTime" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time `gorm:"column:subscription_updated_at;not null;autoUpdateTime" json:"subscription_updated_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (m *SubscriptionModel) IsActive(now time.Time) bool {
	return m.SubscriptionStatus == SubscriptionActive &&
		(m.SubscriptionExpiresAt == nil || now.Before(*m.SubscriptionExpiresAt))
}
