package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentController "lmsku_backend/internals/features/lms/assignments/controller"
)

func AssignmentUserRoutes(private fiber.Router, db *gorm.DB) {
	ctl := assignmentController.NewAssignmentController(db)

	private.Get("/sections/:sectionId/assignments", ctl.ListBySection)
	private.Get("/assignments/:id", ctl.Get)
	private.Post("/assignments/:id/submissions", ctl.Submit)
	private.Get("/assignments/:id/submissions/mine", ctl.MySubmission)
}

func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	asgCtl := assignmentController.NewAssignmentController(db)
	gradeCtl := assignmentController.NewGradingController(db)

	admin.Post("/assignments", asgCtl.Create)
	admin.Patch("/assignments/:id", asgCtl.Update)
	admin.Delete("/assignments/:id", asgCtl.Delete)

	admin.Get("/submissions/pending", gradeCtl.GetPendingSubmissions)
	admin.Get("/assignments/:id/submissions", gradeCtl.ListByAssignment)
	admin.Post("/submissions/:id/grade", gradeCtl.GradeSubmission)
}
