// file: internals/features/lms/social/controller/post_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	socialDTO "lmsku_backend/internals/features/lms/social/dto"
	socialModel "lmsku_backend/internals/features/lms/social/model"
	helper "lmsku_backend/internals/helpers"
)

type PostController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

func (ctl *PostController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// ensureCanRead lets anyone read public groups; private groups need
// membership or admin.
func (ctl *PostController) ensureCanRead(c *fiber.Ctx, group *socialModel.GroupModel) error {
	if !group.GroupIsPrivate {
		return nil
	}
	userID, role, ok := helper.GetOptionalIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "This group is private")
	}
	if role == constants.RoleAdmin {
		return nil
	}
	m, err := membershipOf(ctl.DB, group.GroupID, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return fiber.NewError(fiber.StatusForbidden, "This group is private")
	}
	return nil
}

// POST /api/u/groups/:id/posts  (members only)
func (ctl *PostController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	if _, err := loadGroup(ctl.DB, groupID); err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := membershipOf(ctl.DB, groupID, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if m == nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Join the group before posting")
	}

	var req socialDTO.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	// replies must target a post in the same group
	if req.PostParentID != nil {
		var parent socialModel.PostModel
		if err := ctl.DB.
			Where("post_id = ? AND post_group_id = ?", *req.PostParentID, groupID).
			First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Parent post not found in this group")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		if parent.PostParentID != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Replies cannot be nested")
		}
	}

	post := socialModel.PostModel{
		PostGroupID:  groupID,
		PostUserID:   userID,
		PostParentID: req.PostParentID,
		PostContent:  strings.TrimSpace(req.PostContent),
	}
	if err := ctl.DB.Create(&post).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create post")
	}
	return helper.JsonCreated(c, "Post created", post)
}

// GET /api/u/groups/:id/posts — top-level posts, pinned first.
func (ctl *PostController) ListByGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	group, err := loadGroup(ctl.DB, groupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.ensureCanRead(c, group); err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&socialModel.PostModel{}).
		Where("post_group_id = ? AND post_parent_id IS NULL", groupID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var posts []socialModel.PostModel
	if err := q.Order("post_is_pinned DESC, post_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&posts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", posts, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /api/u/posts/:id — post with its replies.
func (ctl *PostController) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post id")
	}

	var post socialModel.PostModel
	if err := ctl.DB.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	group, err := loadGroup(ctl.DB, post.PostGroupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.ensureCanRead(c, group); err != nil {
		return helper.FromFiberError(c, err)
	}

	var replies []socialModel.PostModel
	if err := ctl.DB.
		Where("post_parent_id = ?", postID).
		Order("post_created_at ASC").
		Find(&replies).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"post":    post,
		"replies": replies,
	})
}

// PATCH /api/u/posts/:id  (author only)
func (ctl *PostController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var post socialModel.PostModel
	if err := ctl.DB.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if post.PostUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author can edit a post")
	}

	var req socialDTO.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}
	if req.PostContent == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&post).
		Update("post_content", strings.TrimSpace(*req.PostContent)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update post")
	}
	return helper.JsonUpdated(c, "Post updated", post)
}

// DELETE /api/u/posts/:id  (author, group moderator, or admin)
func (ctl *PostController) Delete(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var post socialModel.PostModel
	if err := ctl.DB.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if post.PostUserID != userID {
		ok, err := canModerateGroup(ctl.DB, c, post.PostGroupID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Not allowed to delete this post")
		}
	}

	if err := ctl.DB.Delete(&post).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete post")
	}
	return helper.JsonDeleted(c, "Post deleted", fiber.Map{"post_id": postID})
}

// POST /api/u/posts/:id/pin  (group moderator or admin; toggles)
func (ctl *PostController) TogglePin(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid post id")
	}

	var post socialModel.PostModel
	if err := ctl.DB.Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Post not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if post.PostParentID != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Replies cannot be pinned")
	}

	ok, err := canModerateGroup(ctl.DB, c, post.PostGroupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Not allowed to pin in this group")
	}

	if err := ctl.DB.Model(&post).
		Update("post_is_pinned", !post.PostIsPinned).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to pin post")
	}
	post.PostIsPinned = !post.PostIsPinned
	return helper.JsonUpdated(c, "Post pin toggled", post)
}
