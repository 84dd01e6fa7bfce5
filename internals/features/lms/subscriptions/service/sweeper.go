package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	subModel "lmsku_backend/internals/features/lms/subscriptions/model"
)

// StartSubscriptionSweeper marks active subscriptions past their expiry as
// expired. Course access self-heals anyway since enrollments carry their own
// expiry, so this only keeps the subscription rows honest.
func StartSubscriptionSweeper(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			res := db.Model(&subModel.SubscriptionModel{}).
				Where("subscription_status = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?",
					subModel.SubscriptionActive, time.Now()).
				Update("subscription_status", subModel.SubscriptionExpired)
			if res.Error != nil {
				log.Printf("[SWEEPER] failed to expire subscriptions: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[SWEEPER] expired %d subscription(s)", res.RowsAffected)
			}
		}
	}()
}
