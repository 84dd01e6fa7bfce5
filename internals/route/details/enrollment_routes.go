package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "lmsku_backend/internals/features/lms/enrollments/controller"
)

func EnrollmentUserRoutes(private fiber.Router, db *gorm.DB) {
	ctl := enrollmentController.NewEnrollmentController(db)

	private.Get("/enrollments/mine", ctl.ListMine)
}

func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := enrollmentController.NewEnrollmentController(db)

	admin.Post("/enrollments", ctl.Create)
	admin.Get("/courses/:courseId/enrollments", ctl.ListByCourse)
	admin.Patch("/enrollments/:id/extend", ctl.Extend)
	admin.Delete("/enrollments/:id", ctl.Delete)
}
