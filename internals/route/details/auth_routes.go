package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "lmsku_backend/internals/features/users/auth/controller"
	middlewares "lmsku_backend/internals/middlewares"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/refresh-token", ctl.RefreshToken)

	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(db), ctl.Me)
}
