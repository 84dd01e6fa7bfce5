// file: internals/features/lms/social/controller/group_controller.go
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

type GroupController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

func (ctl *GroupController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

/* =============================================================================
   Membership helpers
============================================================================= */

// loadGroup fetches a non-deleted group.
func loadGroup(db *gorm.DB, groupID uuid.UUID) (*socialModel.GroupModel, error) {
	var g socialModel.GroupModel
	if err := db.Where("group_id = ?", groupID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Group not found")
		}
		return nil, err
	}
	return &g, nil
}

// membershipOf returns the user's membership row, nil when not a member.
func membershipOf(db *gorm.DB, groupID, userID uuid.UUID) (*socialModel.GroupMemberModel, error) {
	var m socialModel.GroupMemberModel
	err := db.
		Where("member_group_id = ? AND member_user_id = ?", groupID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// canModerateGroup: platform admins and group owners/moderators.
func canModerateGroup(db *gorm.DB, c *fiber.Ctx, groupID uuid.UUID) (bool, error) {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return false, err
	}
	if role == constants.RoleAdmin {
		return true, nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return false, err
	}
	m, err := membershipOf(db, groupID, userID)
	if err != nil {
		return false, err
	}
	return m != nil && m.MemberRole.CanModerate(), nil
}

/* =============================================================================
   Group CRUD
============================================================================= */

// POST /api/u/groups — any authenticated user can open a group and becomes
// its owner member.
func (ctl *GroupController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req socialDTO.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	slug, err := helper.EnsureUniqueSlug(ctl.DB, helper.GenerateSlug(req.GroupName), "social_groups", "group_slug")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	group := socialModel.GroupModel{
		GroupOwnerID:     userID,
		GroupCourseID:    req.GroupCourseID,
		GroupName:        strings.TrimSpace(req.GroupName),
		GroupSlug:        slug,
		GroupDescription: req.GroupDescription,
	}
	if req.GroupIsPrivate != nil {
		group.GroupIsPrivate = *req.GroupIsPrivate
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		owner := socialModel.GroupMemberModel{
			MemberGroupID: group.GroupID,
			MemberUserID:  userID,
			MemberRole:    socialModel.MemberRoleOwner,
		}
		return tx.Create(&owner).Error
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create group")
	}
	return helper.JsonCreated(c, "Group created", group)
}

// GET /api/u/groups
func (ctl *GroupController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&socialModel.GroupModel{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("LOWER(group_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if raw := c.Query("courseId"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
		}
		q = q.Where("group_course_id = ?", courseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var groups []socialModel.GroupModel
	if err := q.Order("group_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&groups).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", groups, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /api/u/groups/:slug
func (ctl *GroupController) GetBySlug(c *fiber.Ctx) error {
	var group socialModel.GroupModel
	if err := ctl.DB.Where("group_slug = ?", c.Params("slug")).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var memberCount int64
	ctl.DB.Model(&socialModel.GroupMemberModel{}).
		Where("member_group_id = ?", group.GroupID).
		Count(&memberCount)

	var membership *socialModel.GroupMemberModel
	if userID, _, ok := helper.GetOptionalIdentity(c); ok {
		membership, _ = membershipOf(ctl.DB, group.GroupID, userID)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"group":        group,
		"member_count": memberCount,
		"membership":   membership,
	})
}

// PATCH /api/u/groups/:id  (owner/moderator/admin)
func (ctl *GroupController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	group, err := loadGroup(ctl.DB, groupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ok, err := canModerateGroup(ctl.DB, c, groupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "Not allowed to manage this group")
	}

	var req socialDTO.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.GroupName != nil {
		updates["group_name"] = strings.TrimSpace(*req.GroupName)
	}
	if req.GroupDescription != nil {
		updates["group_description"] = *req.GroupDescription
	}
	if req.GroupIsPrivate != nil {
		updates["group_is_private"] = *req.GroupIsPrivate
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(group).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update group")
	}
	return helper.JsonUpdated(c, "Group updated", group)
}

// DELETE /api/u/groups/:id  (owner or admin only, soft delete)
func (ctl *GroupController) Delete(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	group, err := loadGroup(ctl.DB, groupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if role != constants.RoleAdmin && group.GroupOwnerID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owner can delete a group")
	}

	if err := ctl.DB.Delete(group).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete group")
	}
	return helper.JsonDeleted(c, "Group deleted", fiber.Map{"group_id": group.GroupID})
}

/* =============================================================================
   Membership
============================================================================= */

// POST /api/u/groups/:id/join
func (ctl *GroupController) Join(c *fiber.Ctx) error {
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

	existing, err := membershipOf(ctl.DB, groupID, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if existing != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Already a member of this group")
	}

	m := socialModel.GroupMemberModel{
		MemberGroupID: groupID,
		MemberUserID:  userID,
		MemberRole:    socialModel.MemberRoleMember,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join group")
	}
	return helper.JsonCreated(c, "Joined group", m)
}

// POST /api/u/groups/:id/leave
func (ctl *GroupController) Leave(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
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
		return helper.JsonError(c, fiber.StatusNotFound, "Not a member of this group")
	}
	if m.MemberRole == socialModel.MemberRoleOwner {
		return helper.JsonError(c, fiber.StatusConflict, "The owner cannot leave; delete the group instead")
	}

	if err := ctl.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to leave group")
	}
	return helper.JsonDeleted(c, "Left group", fiber.Map{"group_id": groupID})
}

// GET /api/u/groups/:id/members
func (ctl *GroupController) Members(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	if _, err := loadGroup(ctl.DB, groupID); err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 50, 200)
	q := ctl.DB.Model(&socialModel.GroupMemberModel{}).
		Where("member_group_id = ?", groupID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var members []socialModel.GroupMemberModel
	if err := q.Order("member_joined_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", members, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// PATCH /api/u/groups/:id/members/:userId  (owner/admin promote or demote)
func (ctl *GroupController) SetMemberRole(c *fiber.Ctx) error {
	ctl.ensureValidator()

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	group, err := loadGroup(ctl.DB, groupID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if role != constants.RoleAdmin && group.GroupOwnerID != callerID {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owner can change member roles")
	}
	if targetID == group.GroupOwnerID {
		return helper.JsonError(c, fiber.StatusConflict, "The owner role cannot be changed")
	}

	var req socialDTO.SetMemberRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	res := ctl.DB.Model(&socialModel.GroupMemberModel{}).
		Where("member_group_id = ? AND member_user_id = ?", groupID, targetID).
		Update("member_role", req.MemberRole)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Member not found")
	}
	return helper.JsonUpdated(c, "Member role updated", fiber.Map{
		"group_id":    groupID,
		"user_id":     targetID,
		"member_role": req.MemberRole,
	})
}
