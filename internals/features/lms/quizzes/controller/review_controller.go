// file: internals/features/lms/quizzes/controller/review_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lmsku_backend/internals/constants"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	quizDTO "lmsku_backend/internals/features/lms/quizzes/dto"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
	quizService "lmsku_backend/internals/features/lms/quizzes/service"
	helper "lmsku_backend/internals/helpers"
)

// ReviewController is the instructor side of attempts: listing, inspecting
// and grading essay answers.
type ReviewController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

func (ctl *ReviewController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// ensureAttemptReviewable loads an attempt and checks the caller owns the
// quiz's course.
func ensureAttemptReviewable(db *gorm.DB, c *fiber.Ctx, attemptID uuid.UUID) (*quizModel.QuizAttemptModel, *quizModel.QuizModel, error) {
	var att quizModel.QuizAttemptModel
	if err := db.Where("quiz_attempt_id = ?", attemptID).First(&att).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Attempt not found")
		}
		return nil, nil, err
	}
	quiz, _, err := ensureQuizOwner(db, c, att.QuizAttemptQuizID)
	if err != nil {
		return nil, nil, err
	}
	return &att, quiz, nil
}

// GET /api/a/quizzes/:id/attempts
func (ctl *ReviewController) GetQuizAttempts(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	if _, _, err := ensureQuizOwner(ctl.DB, c, quizID); err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&quizModel.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ?", quizID)
	if status := c.Query("status"); status != "" {
		q = q.Where("quiz_attempt_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var attempts []quizModel.QuizAttemptModel
	if err := q.Order("quiz_attempt_started_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", attempts, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /api/a/attempts/:id — full attempt detail with correct options revealed.
func (ctl *ReviewController) GetAttemptDetails(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	att, quiz, err := ensureAttemptReviewable(ctl.DB, c, attemptID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	detail, err := buildAttemptDetail(ctl.DB, att, quiz, true, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", detail)
}

// POST /api/a/attempts/:id/review
// Grades essay answers and re-totals the attempt. Points are capped at the
// question's worth; already-graded objective answers are untouchable.
func (ctl *ReviewController) ReviewAttempt(c *fiber.Ctx) error {
	ctl.ensureValidator()

	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	att, quiz, err := ensureAttemptReviewable(ctl.DB, c, attemptID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if att.QuizAttemptStatus != quizModel.AttemptSubmitted {
		return helper.JsonError(c, fiber.StatusConflict, "Only submitted attempts can be reviewed")
	}

	var req quizDTO.ReviewAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, g := range req.Grades {
			var ans quizModel.QuizAnswerModel
			if err := tx.
				Where("quiz_answer_id = ? AND quiz_answer_attempt_id = ?", g.QuizAnswerID, attemptID).
				First(&ans).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Answer not found on this attempt")
				}
				return err
			}

			var question quizModel.QuizQuestionModel
			if err := tx.Unscoped().
				Where("quiz_question_id = ?", ans.QuizAnswerQuestionID).
				First(&question).Error; err != nil {
				return err
			}
			if question.QuizQuestionType != quizModel.QuestionEssay {
				return fiber.NewError(fiber.StatusBadRequest, "Only essay answers can be graded manually")
			}

			points := g.PointsEarned
			if points > question.QuizQuestionPoints {
				points = question.QuizQuestionPoints
			}
			if err := tx.Model(&ans).Updates(map[string]any{
				"quiz_answer_points_earned": points,
				"quiz_answer_is_correct":    points > 0,
				"quiz_answer_is_graded":     true,
				"quiz_answer_feedback":      g.Feedback,
			}).Error; err != nil {
				return err
			}
		}

		// re-total from the answer rows
		var score float64
		if err := tx.Model(&quizModel.QuizAnswerModel{}).
			Where("quiz_answer_attempt_id = ?", attemptID).
			Select("COALESCE(SUM(quiz_answer_points_earned), 0)").
			Scan(&score).Error; err != nil {
			return err
		}

		passed := quizService.IsPassed(score, att.QuizAttemptMaxScore, quiz.QuizPassingScore)
		if err := tx.Model(att).Updates(map[string]any{
			"quiz_attempt_score":     score,
			"quiz_attempt_is_passed": passed,
		}).Error; err != nil {
			return err
		}
		att.QuizAttemptScore = score
		att.QuizAttemptIsPassed = passed
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	data, _ := json.Marshal(fiber.Map{
		"quiz_attempt_id": attemptID,
		"quiz_id":         quiz.QuizID,
	})
	notifService.NotifyUser(ctl.DB, att.QuizAttemptUserID,
		notifModel.KindGraded,
		"Quiz graded",
		"Your quiz attempt has been reviewed: "+quiz.QuizTitle,
		datatypes.JSON(data))

	return helper.JsonUpdated(c, "Attempt reviewed", att)
}

// GET /api/a/attempts  (admin: all; instructor: attempts on own courses)
func (ctl *ReviewController) GetAllAttempts(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	q := ctl.DB.Model(&quizModel.QuizAttemptModel{}).
		Joins("JOIN quizzes ON quizzes.quiz_id = quiz_attempts.quiz_attempt_quiz_id").
		Joins("JOIN course_sections ON course_sections.section_id = quizzes.quiz_section_id").
		Joins("JOIN courses ON courses.course_id = course_sections.section_course_id")
	if role != constants.RoleAdmin {
		q = q.Where("courses.course_instructor_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("quiz_attempt_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var attempts []quizModel.QuizAttemptModel
	if err := q.Order("quiz_attempt_started_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", attempts, helper.BuildPagination(paging.Page, paging.PerPage, total))
}
