package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	socialController "lmsku_backend/internals/features/lms/social/controller"
)

func SocialUserRoutes(private fiber.Router, db *gorm.DB) {
	groupCtl := socialController.NewGroupController(db)
	postCtl := socialController.NewPostController(db)

	private.Post("/groups", groupCtl.Create)
	private.Get("/groups", groupCtl.List)
	private.Get("/groups/:slug", groupCtl.GetBySlug)
	private.Patch("/groups/:id", groupCtl.Update)
	private.Delete("/groups/:id", groupCtl.Delete)

	private.Post("/groups/:id/join", groupCtl.Join)
	private.Post("/groups/:id/leave", groupCtl.Leave)
	private.Get("/groups/:id/members", groupCtl.Members)
	private.Patch("/groups/:id/members/:userId", groupCtl.SetMemberRole)

	private.Post("/groups/:id/posts", postCtl.Create)
	private.Get("/groups/:id/posts", postCtl.ListByGroup)
	private.Get("/posts/:id", postCtl.Get)
	private.Patch("/posts/:id", postCtl.Update)
	private.Delete("/posts/:id", postCtl.Delete)
	private.Post("/posts/:id/pin", postCtl.TogglePin)
}
