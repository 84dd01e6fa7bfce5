package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "lmsku_backend/internals/features/users/user/controller"
)

func UserRoutes(private fiber.Router, admin fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	private.Patch("/users/me", ctl.UpdateProfile)

	admin.Get("/users", adminOnly("user management"), ctl.List)
	admin.Patch("/users/:id/active", adminOnly("user management"), ctl.SetActive)
	admin.Patch("/users/:id/role", adminOnly("user management"), ctl.SetRole)
}
