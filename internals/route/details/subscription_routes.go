package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subscriptionController "lmsku_backend/internals/features/lms/subscriptions/controller"
)

func SubscriptionPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := subscriptionController.NewSubscriptionController(db)

	public.Get("/plans", ctl.ListPlans)
}

func SubscriptionUserRoutes(private fiber.Router, db *gorm.DB) {
	ctl := subscriptionController.NewSubscriptionController(db)

	private.Post("/subscriptions/checkout", ctl.Checkout)
	private.Get("/subscriptions/mine", ctl.Mine)
	private.Post("/subscriptions/:id/cancel", ctl.Cancel)
}

func SubscriptionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := subscriptionController.NewSubscriptionController(db)

	admin.Post("/plans", adminOnly("plan management"), ctl.CreatePlan)
	admin.Patch("/plans/:id", adminOnly("plan management"), ctl.UpdatePlan)
	admin.Delete("/plans/:id", adminOnly("plan management"), ctl.DeletePlan)
}

// WebhookRoutes mounts the Midtrans callback outside every auth group.
func WebhookRoutes(app *fiber.App, db *gorm.DB) {
	ctl := subscriptionController.NewSubscriptionController(db)

	app.Post("/api/subscriptions/notification", ctl.Webhook)
}
