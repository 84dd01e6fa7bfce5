package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID           uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseInstructorID uuid.UUID `gorm:"column:course_instructor_id;type:uuid;not null;index:idx_courses_instructor" json:"course_instructor_id"`

	CourseTitle       string  `gorm:"column:course_title;type:varchar(180);not null" json:"course_title"`
	CourseSlug        string  `gorm:"column:course_slug;type:varchar(160);not null;uniqueIndex:uq_courses_slug" json:"course_slug"`
	CourseDescription *string `gorm:"column:course_description" json:"course_description,omitempty"`
	CourseIsPublished bool    `gorm:"column:course_is_published;not null;default:false" json:"course_is_published"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (CourseModel) TableName() string {
	return "courses"
}
