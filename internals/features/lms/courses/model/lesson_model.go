package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonModel struct {
	LessonID        uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	LessonSectionID uuid.UUID `gorm:"column:lesson_section_id;type:uuid;not null;index:idx_lessons_section" json:"lesson_section_id"`

	LessonTitle    string  `gorm:"column:lesson_title;type:varchar(180);not null" json:"lesson_title"`
	LessonContent  *string `gorm:"column:lesson_content" json:"lesson_content,omitempty"`
	LessonVideoURL *string `gorm:"column:lesson_video_url;type:varchar(500)" json:"lesson_video_url,omitempty"`
	LessonPosition int     `gorm:"column:lesson_position;not null;default:0" json:"lesson_position"`

	// Preview lessons are viewable without enrollment.
	LessonIsPreview bool `gorm:"column:lesson_is_preview;not null;default:false" json:"lesson_is_preview"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;not null;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;not null;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at;index" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string {
	return "lessons"
}
