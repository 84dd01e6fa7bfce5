// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "lmsku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH / USER BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up Webhook routes...")
	routeDetails.WebhookRoutes(app, db)

	log.Println("[INFO] Setting up WebSocket routes...")
	routeDetails.WebSocketRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → optional JWT: anonymous allowed, identity used when present
	log.Println("[INFO] Setting up PUBLIC group...")
	public := routeDetails.PublicGroup(app)

	// PRIVATE (any authenticated user)
	log.Println("[INFO] Setting up PRIVATE group...")
	private := routeDetails.PrivateGroup(app, db)

	// ADMIN (instructor/admin; admin-only routes tighten per-route)
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := routeDetails.AdminGroup(app, db)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(private, admin, db)

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CoursePublicRoutes(public, db)
	routeDetails.CourseUserRoutes(private, db)
	routeDetails.CourseAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Enrollment routes...")
	routeDetails.EnrollmentUserRoutes(private, db)
	routeDetails.EnrollmentAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Quiz routes...")
	routeDetails.QuizUserRoutes(private, db)
	routeDetails.QuizAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Assignment routes...")
	routeDetails.AssignmentUserRoutes(private, db)
	routeDetails.AssignmentAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Social routes...")
	routeDetails.SocialUserRoutes(private, db)

	log.Println("[INFO] Mounting Subscription routes...")
	routeDetails.SubscriptionPublicRoutes(public, db)
	routeDetails.SubscriptionUserRoutes(private, db)
	routeDetails.SubscriptionAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Lookup routes...")
	routeDetails.LookupAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Notification routes...")
	routeDetails.NotificationUserRoutes(private, db)
	routeDetails.NotificationAdminRoutes(admin, db)
}
