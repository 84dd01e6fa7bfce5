// file: internals/features/lms/quizzes/controller/quiz_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	accessService "lmsku_backend/internals/features/lms/access/service"
	courseModel "lmsku_backend/internals/features/lms/courses/model"
	enrollmentModel "lmsku_backend/internals/features/lms/enrollments/model"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	quizDTO "lmsku_backend/internals/features/lms/quizzes/dto"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
	helper "lmsku_backend/internals/helpers"
)

type QuizController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db}
}

func (ctl *QuizController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

/* =============================================================================
   Ownership + access resolution
   Quizzes hang off sections, so every check walks quiz → section → course.
============================================================================= */

// loadQuizCourse resolves a quiz and its owning course.
func loadQuizCourse(db *gorm.DB, quizID uuid.UUID) (*quizModel.QuizModel, *courseModel.CourseModel, error) {
	var quiz quizModel.QuizModel
	if err := db.Where("quiz_id = ?", quizID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, nil, err
	}

	var section courseModel.SectionModel
	if err := db.Where("section_id = ?", quiz.QuizSectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, nil, err
	}

	var course courseModel.CourseModel
	if err := db.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, nil, err
	}
	return &quiz, &course, nil
}

// ensureQuizOwner resolves the quiz and rejects callers who are neither the
// course instructor nor an admin.
func ensureQuizOwner(db *gorm.DB, c *fiber.Ctx, quizID uuid.UUID) (*quizModel.QuizModel, *courseModel.CourseModel, error) {
	quiz, course, err := loadQuizCourse(db, quizID)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureCourseOwnership(c, course); err != nil {
		return nil, nil, err
	}
	return quiz, course, nil
}

func ensureCourseOwnership(c *fiber.Ctx, course *courseModel.CourseModel) error {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleAdmin {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if course.CourseInstructorID != userID {
		return fiber.NewError(fiber.StatusForbidden, "You do not own this course")
	}
	return nil
}

// evaluateQuizAccess decides whether the caller may take this quiz: same
// precedence as lesson access, minus preview (quizzes are never preview).
func evaluateQuizAccess(db *gorm.DB, c *fiber.Ctx, course *courseModel.CourseModel, now time.Time) (accessService.Decision, error) {
	userID, role, ok := helper.GetOptionalIdentity(c)
	ident := accessService.Identity{UserID: userID, Role: role, Known: ok}

	var enr *enrollmentModel.EnrollmentModel
	typeName := ""
	if ident.Known {
		var row enrollmentModel.EnrollmentModel
		err := db.
			Where("enrollment_user_id = ? AND enrollment_course_id = ?", ident.UserID, course.CourseID).
			First(&row).Error
		switch {
		case err == nil:
			enr = &row
			var et lookupModel.EnrollmentTypeModel
			if err := db.Where("enrollment_type_id = ?", row.EnrollmentTypeID).First(&et).Error; err == nil {
				typeName = et.EnrollmentTypeCode
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no enrollment
		default:
			return accessService.Decision{}, err
		}
	}

	return accessService.EvaluateLesson(false, course.CourseInstructorID, enr, typeName, ident, now), nil
}

/* =============================================================================
   Quiz CRUD (instructor/admin)
============================================================================= */

// POST /api/a/quizzes
func (ctl *QuizController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req quizDTO.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var section courseModel.SectionModel
	if err := ctl.DB.Where("section_id = ?", req.QuizSectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := ensureCourseOwnership(c, &course); err != nil {
		return helper.FromFiberError(c, err)
	}

	quiz := quizModel.QuizModel{
		QuizSectionID:   req.QuizSectionID,
		QuizTitle:       strings.TrimSpace(req.QuizTitle),
		QuizDescription: req.QuizDescription,
	}
	if req.QuizIsPublished != nil {
		quiz.QuizIsPublished = *req.QuizIsPublished
	}
	if req.QuizPassingScore != nil {
		quiz.QuizPassingScore = *req.QuizPassingScore
	}
	quiz.QuizTimeLimitSec = req.QuizTimeLimitSec
	quiz.QuizMaxAttempts = req.QuizMaxAttempts

	if err := ctl.DB.Create(&quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}
	return helper.JsonCreated(c, "Quiz created", quiz)
}

// GET /api/u/sections/:sectionId/quizzes
// Students see only published quizzes; owners see everything.
func (ctl *QuizController) ListBySection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("sectionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	var section courseModel.SectionModel
	if err := ctl.DB.Where("section_id = ?", sectionID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.Where("course_id = ?", section.SectionCourseID).First(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	q := ctl.DB.Model(&quizModel.QuizModel{}).Where("quiz_section_id = ?", sectionID)
	if ensureCourseOwnership(c, &course) != nil {
		q = q.Where("quiz_is_published = ?", true)
	}

	var quizzes []quizModel.QuizModel
	if err := q.Order("quiz_created_at ASC").Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", quizzes)
}

// GET /api/u/quizzes/:id — quiz metadata plus the student-safe question list.
func (ctl *QuizController) Get(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	quiz, course, err := loadQuizCourse(ctl.DB, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	isOwner := ensureCourseOwnership(c, course) == nil
	if !quiz.QuizIsPublished && !isOwner {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}
	if !isOwner {
		decision, err := evaluateQuizAccess(ctl.DB, c, course, time.Now())
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		if !decision.CanAccess {
			return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this quiz")
		}
	}

	questions, err := loadPublicQuestions(ctl.DB, quizID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"quiz":      quiz,
		"questions": questions,
	})
}

func loadPublicQuestions(db *gorm.DB, quizID uuid.UUID) ([]quizDTO.PublicQuestion, error) {
	var rows []quizModel.QuizQuestionModel
	if err := db.
		Where("quiz_question_quiz_id = ?", quizID).
		Order("quiz_question_position ASC, quiz_question_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]quizDTO.PublicQuestion, 0, len(rows))
	for _, q := range rows {
		var opts []quizModel.QuestionOption
		if len(q.QuizQuestionOptions) > 0 {
			_ = json.Unmarshal(q.QuizQuestionOptions, &opts)
		}
		out = append(out, quizDTO.ToPublicQuestion(q, opts))
	}
	return out, nil
}

// PATCH /api/a/quizzes/:id
func (ctl *QuizController) Update(c *fiber.Ctx) error {
	ctl.ensureValidator()

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, _, err := ensureQuizOwner(ctl.DB, c, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req quizDTO.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.QuizTitle != nil {
		updates["quiz_title"] = strings.TrimSpace(*req.QuizTitle)
	}
	if req.QuizDescription != nil {
		updates["quiz_description"] = *req.QuizDescription
	}
	if req.QuizIsPublished != nil {
		updates["quiz_is_published"] = *req.QuizIsPublished
	}
	if req.QuizPassingScore != nil {
		updates["quiz_passing_score"] = *req.QuizPassingScore
	}
	if req.QuizTimeLimitSec != nil {
		updates["quiz_time_limit_sec"] = *req.QuizTimeLimitSec
	}
	if req.QuizMaxAttempts != nil {
		updates["quiz_max_attempts"] = *req.QuizMaxAttempts
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(quiz).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update quiz")
	}
	return helper.JsonUpdated(c, "Quiz updated", quiz)
}

// DELETE /api/a/quizzes/:id  (soft delete)
func (ctl *QuizController) Delete(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, _, err := ensureQuizOwner(ctl.DB, c, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.Delete(quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	return helper.JsonDeleted(c, "Quiz deleted", fiber.Map{"quiz_id": quiz.QuizID})
}

/* =============================================================================
   Question CRUD (instructor/admin)
============================================================================= */

// buildOptions materializes option inputs into the stored jsonb array and
// the correct option column. Objective questions need exactly one correct
// option; essays take none.
func buildOptions(qType quizModel.QuestionType, inputs []quizDTO.QuestionOptionInput) (datatypes.JSON, *uuid.UUID, error) {
	if !qType.IsObjective() {
		if len(inputs) > 0 {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Essay questions cannot have options")
		}
		return nil, nil, nil
	}

	if qType == quizModel.QuestionTrueFalse && len(inputs) != 2 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "True/false questions need exactly 2 options")
	}
	if qType == quizModel.QuestionMultipleChoice && len(inputs) < 2 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Multiple choice questions need at least 2 options")
	}

	var correctID *uuid.UUID
	opts := make([]quizModel.QuestionOption, 0, len(inputs))
	for _, in := range inputs {
		opt := quizModel.QuestionOption{
			OptionID:   uuid.New(),
			OptionText: strings.TrimSpace(in.OptionText),
		}
		if in.IsCorrect {
			if correctID != nil {
				return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Exactly one option must be marked correct")
			}
			id := opt.OptionID
			correctID = &id
		}
		opts = append(opts, opt)
	}
	if correctID == nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Exactly one option must be marked correct")
	}

	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, nil, err
	}
	return datatypes.JSON(raw), correctID, nil
}

// POST /api/a/quizzes/:id/questions
func (ctl *QuizController) AddQuestion(c *fiber.Ctx) error {
	ctl.ensureValidator()

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	if _, _, err := ensureQuizOwner(ctl.DB, c, quizID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req quizDTO.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	options, correctID, err := buildOptions(req.QuizQuestionType, req.Options)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	question := quizModel.QuizQuestionModel{
		QuizQuestionQuizID:          quizID,
		QuizQuestionType:            req.QuizQuestionType,
		QuizQuestionText:            strings.TrimSpace(req.QuizQuestionText),
		QuizQuestionOptions:         options,
		QuizQuestionCorrectOptionID: correctID,
	}
	if req.QuizQuestionPoints != nil {
		question.QuizQuestionPoints = *req.QuizQuestionPoints
	} else {
		question.QuizQuestionPoints = 1
	}
	if req.QuizQuestionPosition != nil {
		question.QuizQuestionPosition = *req.QuizQuestionPosition
	}

	if err := ctl.DB.Create(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}
	return helper.JsonCreated(c, "Question created", question)
}

// PATCH /api/a/questions/:id
func (ctl *QuizController) UpdateQuestion(c *fiber.Ctx) error {
	ctl.ensureValidator()

	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var question quizModel.QuizQuestionModel
	if err := ctl.DB.Where("quiz_question_id = ?", questionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if _, _, err := ensureQuizOwner(ctl.DB, c, question.QuizQuestionQuizID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req quizDTO.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.QuizQuestionText != nil {
		updates["quiz_question_text"] = strings.TrimSpace(*req.QuizQuestionText)
	}
	if req.QuizQuestionPoints != nil {
		updates["quiz_question_points"] = *req.QuizQuestionPoints
	}
	if req.QuizQuestionPosition != nil {
		updates["quiz_question_position"] = *req.QuizQuestionPosition
	}
	if len(req.Options) > 0 {
		options, correctID, err := buildOptions(question.QuizQuestionType, req.Options)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		updates["quiz_question_options"] = options
		updates["quiz_question_correct_option_id"] = correctID
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&question).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}
	return helper.JsonUpdated(c, "Question updated", question)
}

// DELETE /api/a/questions/:id
func (ctl *QuizController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var question quizModel.QuizQuestionModel
	if err := ctl.DB.Where("quiz_question_id = ?", questionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if _, _, err := ensureQuizOwner(ctl.DB, c, question.QuizQuestionQuizID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.Delete(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"quiz_question_id": questionID})
}
