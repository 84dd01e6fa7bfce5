package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionModel struct {
	SectionID       uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	SectionCourseID uuid.UUID `gorm:"column:section_course_id;type:uuid;not null;index:idx_sections_course" json:"section_course_id"`

	SectionTitle    string `gorm:"column:section_title;type:varchar(180);not null" json:"section_title"`
	SectionPosition int    `gorm:"column:section_position;not null;default:0" json:"section_position"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;not null;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;not null;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"section_deleted_at,omitempty"`
}

func (SectionModel) TableName() string {
	return "course_sections"
}
