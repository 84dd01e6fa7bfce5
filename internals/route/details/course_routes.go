package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessController "lmsku_backend/internals/features/lms/access/controller"
	courseController "lmsku_backend/internals/features/lms/courses/controller"
)

func CoursePublicRoutes(public fiber.Router, db *gorm.DB) {
	courseCtl := courseController.NewCourseController(db)
	sectionCtl := courseController.NewSectionController(db)
	accessCtl := accessController.NewAccessController(db)

	public.Get("/courses", courseCtl.ListPublic)
	public.Get("/courses/:slug", courseCtl.GetBySlug)
	public.Get("/courses/:courseId/sections", sectionCtl.ListByCourse)

	// lesson listing with per-lesson access annotation (optional identity)
	public.Get("/courses/:courseId/lessons", accessCtl.GetCourseLessons)
}

func CourseUserRoutes(private fiber.Router, db *gorm.DB) {
	accessCtl := accessController.NewAccessController(db)

	private.Get("/lessons/:id", accessCtl.GetLesson)
	private.Get("/lessons/:id/access-check", accessCtl.CheckLessonAccess)
}

func CourseAdminRoutes(admin fiber.Router, db *gorm.DB) {
	courseCtl := courseController.NewCourseController(db)
	sectionCtl := courseController.NewSectionController(db)
	lessonCtl := courseController.NewLessonController(db)

	admin.Post("/courses", courseCtl.Create)
	admin.Get("/courses", courseCtl.ListMine)
	admin.Patch("/courses/:id", courseCtl.Update)
	admin.Delete("/courses/:id", courseCtl.Delete)

	admin.Post("/sections", sectionCtl.Create)
	admin.Patch("/sections/:id", sectionCtl.Update)
	admin.Delete("/sections/:id", sectionCtl.Delete)

	admin.Post("/lessons", lessonCtl.Create)
	admin.Patch("/lessons/:id", lessonCtl.Update)
	admin.Delete("/lessons/:id", lessonCtl.Delete)
}
