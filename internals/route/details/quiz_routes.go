package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizController "lmsku_backend/internals/features/lms/quizzes/controller"
)

func QuizUserRoutes(private fiber.Router, db *gorm.DB) {
	quizCtl := quizController.NewQuizController(db)
	attemptCtl := quizController.NewAttemptController(db)

	private.Get("/sections/:sectionId/quizzes", quizCtl.ListBySection)
	private.Get("/quizzes/:id", quizCtl.Get)

	// attempt lifecycle
	private.Post("/quizzes/:id/attempts", attemptCtl.Start)
	private.Get("/quizzes/:id/attempts/mine", attemptCtl.ListMine)
	private.Get("/attempts/:id", attemptCtl.GetMine)
	private.Post("/attempts/:id/pause", attemptCtl.Pause)
	private.Post("/attempts/:id/resume", attemptCtl.Resume)
	private.Post("/attempts/:id/submit", attemptCtl.Submit)
}

func QuizAdminRoutes(admin fiber.Router, db *gorm.DB) {
	quizCtl := quizController.NewQuizController(db)
	reviewCtl := quizController.NewReviewController(db)

	admin.Post("/quizzes", quizCtl.Create)
	admin.Patch("/quizzes/:id", quizCtl.Update)
	admin.Delete("/quizzes/:id", quizCtl.Delete)

	admin.Post("/quizzes/:id/questions", quizCtl.AddQuestion)
	admin.Patch("/questions/:id", quizCtl.UpdateQuestion)
	admin.Delete("/questions/:id", quizCtl.DeleteQuestion)

	admin.Get("/quizzes/:id/attempts", reviewCtl.GetQuizAttempts)
	admin.Get("/attempts", reviewCtl.GetAllAttempts)
	admin.Get("/attempts/:id", reviewCtl.GetAttemptDetails)
	admin.Post("/attempts/:id/review", reviewCtl.ReviewAttempt)
}
