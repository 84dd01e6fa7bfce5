package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* =============================================================================
   ENUM-like: member role ('member','moderator','owner')
============================================================================= */

type MemberRole string

const (
	MemberRoleMember    MemberRole = "member"
	MemberRoleModerator MemberRole = "moderator"
	MemberRoleOwner     MemberRole = "owner"
)

func (r MemberRole) String() string { return string(r) }
func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleMember, MemberRoleModerator, MemberRoleOwner:
		return true
	default:
		return false
	}
}

// CanModerate reports whether the role may pin and remove other members'
// posts.
func (r MemberRole) CanModerate() bool {
	return r == MemberRoleModerator || r == MemberRoleOwner
}

// sql.Scanner + driver.Valuer
func (r *MemberRole) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = MemberRole(v)
	case []byte:
		*r = MemberRole(string(v))
	default:
		return fmt.Errorf("unsupported type for MemberRole: %T", value)
	}
	if !r.Valid() {
		return fmt.Errorf("invalid MemberRole: %q", *r)
	}
	return nil
}
func (r MemberRole) Value() (driver.Value, error) {
	if r == "" {
		return nil, nil
	}
	if !r.Valid() {
		return nil, fmt.Errorf("invalid MemberRole: %q", r)
	}
	return string(r), nil
}

/* =============================================================================
   MODEL: social_group_members
============================================================================= */

type GroupMemberModel struct {
	MemberID      uuid.UUID `gorm:"column:member_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	MemberGroupID uuid.UUID `gorm:"column:member_group_id;type:uuid;not null;uniqueIndex:uq_group_members_group_user,priority:1" json:"member_group_id"`
	MemberUserID  uuid.UUID `gorm:"column:member_user_id;type:uuid;not null;uniqueIndex:uq_group_members_group_user,priority:2;index:idx_group_members_user" json:"member_user_id"`

	MemberRole MemberRole `gorm:"column:member_role;type:varchar(16);not null;default:'member'" json:"member_role"`

	MemberJoinedAt time.Time `gorm:"column:member_joined_at;type:timestamptz;not null;default:now()" json:"member_joined_at"`
}

func (GroupMemberModel) TableName() string {
	return "social_group_members"
}
