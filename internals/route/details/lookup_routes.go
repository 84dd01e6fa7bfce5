package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lookupController "lmsku_backend/internals/features/lms/lookups/controller"
)

func LookupAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := lookupController.NewEnrollmentTypeController(db)

	admin.Get("/enrollment-types", ctl.List)

	guard := adminOnly("lookup management")
	admin.Post("/enrollment-types", guard, ctl.Create)
	admin.Patch("/enrollment-types/:id", guard, ctl.Update)
	admin.Post("/enrollment-types/bulk", guard, ctl.BulkOp)
}
