package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PlanModel struct {
	PlanID uuid.UUID `gorm:"column:plan_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`

	PlanName        string  `gorm:"column:plan_name;type:varchar(120);not null" json:"plan_name"`
	PlanDescription *string `gorm:"column:plan_description" json:"plan_description,omitempty"`

	// Price in the smallest currency unit (IDR has no decimals).
	PlanPrice        int64 `gorm:"column:plan_price;not null" json:"plan_price"`
	PlanDurationDays int   `gorm:"column:plan_duration_days;not null;default:30" json:"plan_duration_days"`

	PlanFeatures pq.StringArray `gorm:"column:plan_features;type:text[]" json:"plan_features"`

	PlanIsActive bool `gorm:"column:plan_is_active;not null;default:true" json:"plan_is_active"`

	PlanCreatedAt time.Time      `gorm:"column:plan_created_at;not null;autoCreateTime" json:"plan_created_at"`
	PlanUpdatedAt time.Time      `gorm:"column:plan_updated_at;not null;autoUpdateTime" json:"plan_updated_at"`
	PlanDeletedAt gorm.DeletedAt `gorm:"column:plan_deleted_at;index" json:"plan_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (PlanModel) TableName() string {
	return "subscription_plans"
}

// PlanCourseModel links a plan to the courses it unlocks.
type PlanCourseModel struct {
	PlanCourseID       uuid.UUID `gorm:"column:plan_course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_course_id"`
	PlanCoursePlanID   uuid.UUID `gorm:"column:plan_course_plan_id;type:uuid;not null;uniqueIndex:uq_plan_courses,priority:1" json:"plan_course_plan_id"`
	PlanCourseCourseID uuid.UUID `gorm:"column:plan_course_course_id;type:uuid;not null;uniqueIndex:uq_plan_courses,priority:2" json:"plan_course_course_id"`

	PlanCourseCreatedAt time.Time `gorm:"column:plan_course_created_at;not null;autoCreateTime" json:"plan_course_created_at"`
}

func (PlanCourseModel) TableName() string {
	return "subscription_plan_courses"
}
