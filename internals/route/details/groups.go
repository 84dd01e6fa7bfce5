// file: internals/route/details/groups.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

// PublicGroup carries optional identity: anonymous requests pass through,
// a valid bearer token upgrades the access decision (e.g. enrolled lessons).
func PublicGroup(app *fiber.App) fiber.Router {
	return app.Group("/api/public", authMiddleware.OptionalAuthMiddleware())
}

// PrivateGroup requires a valid, non-blacklisted token.
func PrivateGroup(app *fiber.App, db *gorm.DB) fiber.Router {
	return app.Group("/api/u", authMiddleware.AuthMiddleware(db))
}

// AdminGroup is the instructor/admin console surface. Admin-only routes add
// their own OnlyRoles on top.
func AdminGroup(app *fiber.App, db *gorm.DB) fiber.Router {
	return app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorInstructor("the management console"),
			constants.InstructorAndAbove...,
		),
	)
}

// adminOnly tightens a route to platform admins.
func adminOnly(feature string) fiber.Handler {
	return authMiddleware.OnlyRoles(constants.RoleErrorAdmin(feature), constants.AdminOnly...)
}
