// file: internals/features/lms/social/dto/social_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =============================================================================
   Group requests
============================================================================= */

type CreateGroupRequest struct {
	GroupName        string     `json:"group_name" validate:"required,min=3,max=120"`
	GroupDescription *string    `json:"group_description" validate:"omitempty,max=2000"`
	GroupCourseID    *uuid.UUID `json:"group_course_id" validate:"omitempty,uuid4"`
	GroupIsPrivate   *bool      `json:"group_is_private"`
}

type UpdateGroupRequest struct {
	GroupName        *string `json:"group_name" validate:"omitempty,min=3,max=120"`
	GroupDescription *string `json:"group_description" validate:"omitempty,max=2000"`
	GroupIsPrivate   *bool   `json:"group_is_private"`
}

type SetMemberRoleRequest struct {
	MemberRole string `json:"member_role" validate:"required,oneof=member moderator"`
}

/* =============================================================================
   Post requests
============================================================================= */

type CreatePostRequest struct {
	PostContent  string     `json:"post_content" validate:"required,min=1,max=10000"`
	PostParentID *uuid.UUID `json:"post_parent_id" validate:"omitempty,uuid4"`
}

type UpdatePostRequest struct {
	PostContent *string `json:"post_content" validate:"omitempty,min=1,max=10000"`
}
