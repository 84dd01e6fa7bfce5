// file: internals/features/lms/courses/dto/course_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* ==============================
   Courses
============================== */

type CreateCourseRequest struct {
	CourseTitle       string  `json:"course_title" validate:"required,max=180"`
	CourseSlug        *string `json:"course_slug" validate:"omitempty,max=160"`
	CourseDescription *string `json:"course_description" validate:"omitempty"`
	CourseIsPublished *bool   `json:"course_is_published" validate:"omitempty"`
}

type UpdateCourseRequest struct {
	CourseTitle       *string `json:"course_title" validate:"omitempty,max=180"`
	CourseDescription *string `json:"course_description" validate:"omitempty"`
	CourseIsPublished *bool   `json:"course_is_published" validate:"omitempty"`
}

/* ==============================
   Sections
============================== */

type CreateSectionRequest struct {
	SectionCourseID uuid.UUID `json:"section_course_id" validate:"required,uuid4"`
	SectionTitle    string    `json:"section_title" validate:"required,max=180"`
	SectionPosition *int      `json:"section_position" validate:"omitempty,gte=0"`
}

type UpdateSectionRequest struct {
	SectionTitle    *string `json:"section_title" validate:"omitempty,max=180"`
	SectionPosition *int    `json:"section_position" validate:"omitempty,gte=0"`
}

/* ==============================
   Lessons
============================== */

type CreateLessonRequest struct {
	LessonSectionID uuid.UUID `json:"lesson_section_id" validate:"required,uuid4"`
	LessonTitle     string    `json:"lesson_title" validate:"required,max=180"`
	LessonContent   *string   `json:"lesson_content" validate:"omitempty"`
	LessonVideoURL  *string   `json:"lesson_video_url" validate:"omitempty,url,max=500"`
	LessonPosition  *int      `json:"lesson_position" validate:"omitempty,gte=0"`
	LessonIsPreview *bool     `json:"lesson_is_preview" validate:"omitempty"`
}

type UpdateLessonRequest struct {
	LessonTitle     *string `json:"lesson_title" validate:"omitempty,max=180"`
	LessonContent   *string `json:"lesson_content" validate:"omitempty"`
	LessonVideoURL  *string `json:"lesson_video_url" validate:"omitempty,url,max=500"`
	LessonPosition  *int    `json:"lesson_position" validate:"omitempty,gte=0"`
	LessonIsPreview *bool   `json:"lesson_is_preview" validate:"omitempty"`
}
