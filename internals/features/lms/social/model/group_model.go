package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupModel struct {
	GroupID      uuid.UUID `gorm:"column:group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	GroupOwnerID uuid.UUID `gorm:"column:group_owner_id;type:uuid;not null;index:idx_groups_owner" json:"group_owner_id"`

	// Optional course binding: course study groups point at their course.
	GroupCourseID *uuid.UUID `gorm:"column:group_course_id;type:uuid;index:idx_groups_course" json:"group_course_id,omitempty"`

	GroupName        string  `gorm:"column:group_name;type:varchar(120);not null" json:"group_name"`
	GroupSlug        string  `gorm:"column:group_slug;type:varchar(140);not null;uniqueIndex:uq_groups_slug" json:"group_slug"`
	GroupDescription *string `gorm:"column:group_description" json:"group_description,omitempty"`

	// Private groups hide their posts from non-members.
	GroupIsPrivate bool `gorm:"column:group_is_private;not null;default:false" json:"group_is_private"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;not null;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;not null;autoUpdateTime" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"group_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (GroupModel) TableName() string {
	return "social_groups"
}
