package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel is a group post or, when parent_id is set, a reply.
type PostModel struct {
	PostID      uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"post_id"`
	PostGroupID uuid.UUID `gorm:"column:post_group_id;type:uuid;not null;index:idx_posts_group" json:"post_group_id"`
	PostUserID  uuid.UUID `gorm:"column:post_user_id;type:uuid;not null;index:idx_posts_user" json:"post_user_id"`

	PostParentID *uuid.UUID `gorm:"column:post_parent_id;type:uuid;index:idx_posts_parent" json:"post_parent_id,omitempty"`

	PostContent  string `gorm:"column:post_content;type:text;not null" json:"post_content"`
	PostIsPinned bool   `gorm:"column:post_is_pinned;not null;default:false" json:"post_is_pinned"`

	PostCreatedAt time.Time      `gorm:"column:post_created_at;not null;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt time.Time      `gorm:"column:post_updated_at;not null;autoUpdateTime" json:"post_updated_at"`
	PostDeletedAt gorm.DeletedAt `gorm:"column:post_deleted_at;index" json:"post_deleted_at,omitempty"`
}

func (PostModel) TableName() string {
	return "social_posts"
}
