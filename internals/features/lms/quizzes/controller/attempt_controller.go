// file: internals/features/lms/quizzes/controller/attempt_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	quizDTO "lmsku_backend/internals/features/lms/quizzes/dto"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
	quizService "lmsku_backend/internals/features/lms/quizzes/service"
	helper "lmsku_backend/internals/helpers"
)

type AttemptController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewAttemptController(db *gorm.DB) *AttemptController {
	return &AttemptController{DB: db}
}

func (ctl *AttemptController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// loadOwnAttempt fetches an attempt and verifies the caller owns it.
func loadOwnAttempt(db *gorm.DB, c *fiber.Ctx, attemptID uuid.UUID) (*quizModel.QuizAttemptModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var att quizModel.QuizAttemptModel
	if err := db.Where("quiz_attempt_id = ?", attemptID).First(&att).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Attempt not found")
		}
		return nil, err
	}
	if att.QuizAttemptUserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your attempt")
	}
	return &att, nil
}

/* =============================================================================
   Start
============================================================================= */

// POST /api/u/quizzes/:id/attempts
// Returns the already-open attempt when one exists instead of minting a new
// attempt number; max_attempts counts every attempt ever started.
func (ctl *AttemptController) Start(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quiz, course, err := loadQuizCourse(ctl.DB, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !quiz.QuizIsPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	now := time.Now()
	decision, err := evaluateQuizAccess(ctl.DB, c, course, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !decision.CanAccess {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this quiz")
	}

	// resume a still-open attempt instead of starting another
	var open quizModel.QuizAttemptModel
	err = ctl.DB.
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_user_id = ? AND quiz_attempt_status = ?",
			quizID, userID, quizModel.AttemptInProgress).
		First(&open).Error
	if err == nil {
		questions, qerr := loadPublicQuestions(ctl.DB, quizID)
		if qerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		return helper.JsonOK(c, "Attempt already in progress", fiber.Map{
			"attempt":   quizDTO.ToAttemptResponse(open, quiz.QuizTimeLimitSec, now),
			"questions": questions,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var used int64
	if err := ctl.DB.Model(&quizModel.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_user_id = ?", quizID, userID).
		Count(&used).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if quiz.QuizMaxAttempts != nil && used >= int64(*quiz.QuizMaxAttempts) {
		return helper.JsonError(c, fiber.StatusConflict, "No attempts remaining for this quiz")
	}

	att := quizModel.QuizAttemptModel{
		QuizAttemptQuizID:    quizID,
		QuizAttemptUserID:    userID,
		QuizAttemptNumber:    int(used) + 1,
		QuizAttemptStatus:    quizModel.AttemptInProgress,
		QuizAttemptStartedAt: now,
	}
	if err := ctl.DB.Create(&att).Error; err != nil {
		// a concurrent start may have claimed the open-attempt slot
		// (uq_quiz_attempts_open); hand that attempt back instead of erroring
		if ctl.DB.
			Where("quiz_attempt_quiz_id = ? AND quiz_attempt_user_id = ? AND quiz_attempt_status = ?",
				quizID, userID, quizModel.AttemptInProgress).
			First(&open).Error == nil {
			questions, qerr := loadPublicQuestions(ctl.DB, quizID)
			if qerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
			}
			return helper.JsonOK(c, "Attempt already in progress", fiber.Map{
				"attempt":   quizDTO.ToAttemptResponse(open, quiz.QuizTimeLimitSec, now),
				"questions": questions,
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start attempt")
	}

	questions, err := loadPublicQuestions(ctl.DB, quizID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonCreated(c, "Attempt started", fiber.Map{
		"attempt":   quizDTO.ToAttemptResponse(att, quiz.QuizTimeLimitSec, now),
		"questions": questions,
	})
}

/* =============================================================================
   Pause / resume
   The timer is server-side: pausing stamps paused_at, resuming folds the
   pause into paused_ms. The deadline moves with it.
============================================================================= */

// POST /api/u/attempts/:id/pause
func (ctl *AttemptController) Pause(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	att, err := loadOwnAttempt(ctl.DB, c, attemptID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !att.IsOpen() {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt is not in progress")
	}
	if att.IsPaused() {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt is already paused")
	}

	quiz, _, err := loadQuizCourse(ctl.DB, att.QuizAttemptQuizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	now := time.Now()
	if quizService.IsOverdue(att, quiz.QuizTimeLimitSec, now) {
		return helper.JsonError(c, fiber.StatusConflict, "Time is over for this attempt")
	}

	if err := ctl.DB.Model(att).
		Update("quiz_attempt_paused_at", now).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to pause attempt")
	}
	att.QuizAttemptPausedAt = &now
	return helper.JsonUpdated(c, "Attempt paused",
		quizDTO.ToAttemptResponse(*att, quiz.QuizTimeLimitSec, now))
}

// POST /api/u/attempts/:id/resume
func (ctl *AttemptController) Resume(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	att, err := loadOwnAttempt(ctl.DB, c, attemptID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !att.IsOpen() {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt is not in progress")
	}
	if !att.IsPaused() {
		return helper.JsonError(c, fiber.StatusConflict, "Attempt is not paused")
	}

	quiz, _, err := loadQuizCourse(ctl.DB, att.QuizAttemptQuizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	pausedMs := att.QuizAttemptPausedMs + now.Sub(*att.QuizAttemptPausedAt).Milliseconds()
	if err := ctl.DB.Model(att).Updates(map[string]any{
		"quiz_attempt_paused_at": nil,
		"quiz_attempt_paused_ms": pausedMs,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resume attempt")
	}
	att.QuizAttemptPausedAt = nil
	att.QuizAttemptPausedMs = pausedMs
	return helper.JsonUpdated(c, "Attempt resumed",
		quizDTO.ToAttemptResponse(*att, quiz.QuizTimeLimitSec, now))
}

/* =============================================================================
   Submit
============================================================================= */

// POST /api/u/attempts/:id/submit
// Runs in a transaction with a row lock so a double submit loses cleanly:
// whichever request locks second sees completed_at set and gets a 409.
// Overdue submissions are finalized with whatever answers arrived.
func (ctl *AttemptController) Submit(c *fiber.Ctx) error {
	ctl.ensureValidator()

	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req quizDTO.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var (
		result   quizDTO.AttemptResponse
		timeOver bool
	)

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var att quizModel.QuizAttemptModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("quiz_attempt_id = ?", attemptID).
			First(&att).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Attempt not found")
			}
			return err
		}
		if att.QuizAttemptUserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Not your attempt")
		}
		if att.QuizAttemptCompletedAt != nil || att.QuizAttemptStatus != quizModel.AttemptInProgress {
			return fiber.NewError(fiber.StatusConflict, "Attempt already submitted")
		}

		var quiz quizModel.QuizModel
		if err := tx.Where("quiz_id = ?", att.QuizAttemptQuizID).First(&quiz).Error; err != nil {
			return err
		}

		var questions []quizModel.QuizQuestionModel
		if err := tx.
			Where("quiz_question_quiz_id = ?", quiz.QuizID).
			Find(&questions).Error; err != nil {
			return err
		}

		now := time.Now()
		timeOver = quizService.IsOverdue(&att, quiz.QuizTimeLimitSec, now)

		score, maxScore, rows := quizService.ScoreAttempt(questions, req.Answers)
		passed := quizService.IsPassed(score, maxScore, quiz.QuizPassingScore)

		for i := range rows {
			rows[i].QuizAnswerAttemptID = att.QuizAttemptID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		att.MarkSubmitted(score, maxScore, passed, now)
		if err := tx.Model(&quizModel.QuizAttemptModel{}).
			Where("quiz_attempt_id = ?", att.QuizAttemptID).
			Updates(map[string]any{
				"quiz_attempt_status":       att.QuizAttemptStatus,
				"quiz_attempt_score":        att.QuizAttemptScore,
				"quiz_attempt_max_score":    att.QuizAttemptMaxScore,
				"quiz_attempt_is_passed":    att.QuizAttemptIsPassed,
				"quiz_attempt_completed_at": att.QuizAttemptCompletedAt,
				"quiz_attempt_paused_at":    nil,
			}).Error; err != nil {
			return err
		}

		result = quizDTO.ToAttemptResponse(att, quiz.QuizTimeLimitSec, now)
		result.TimeOver = timeOver
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	data, _ := json.Marshal(fiber.Map{
		"quiz_attempt_id": attemptID,
		"time_over":       timeOver,
	})
	notifService.NotifyUser(ctl.DB, userID,
		notifModel.KindAttemptFinalized,
		"Quiz attempt submitted",
		fmt.Sprintf("Your attempt scored %.1f/%.1f", result.QuizAttemptScore, result.QuizAttemptMaxScore),
		datatypes.JSON(data))

	return helper.JsonOK(c, "Attempt submitted", result)
}

/* =============================================================================
   Student-side reads
============================================================================= */

// GET /api/u/quizzes/:id/attempts/mine
func (ctl *AttemptController) ListMine(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var attempts []quizModel.QuizAttemptModel
	if err := ctl.DB.
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_user_id = ?", quizID, userID).
		Order("quiz_attempt_number DESC").
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", attempts)
}

// GET /api/u/attempts/:id — own attempt with answers; correct options hidden.
func (ctl *AttemptController) GetMine(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	att, err := loadOwnAttempt(ctl.DB, c, attemptID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quiz, _, err := loadQuizCourse(ctl.DB, att.QuizAttemptQuizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	detail, err := buildAttemptDetail(ctl.DB, att, quiz, false, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", detail)
}

// buildAttemptDetail joins answers with their questions. revealCorrect is
// the instructor switch: it adds the correct option id per answer.
func buildAttemptDetail(db *gorm.DB, att *quizModel.QuizAttemptModel, quiz *quizModel.QuizModel, revealCorrect bool, now time.Time) (*quizDTO.AttemptDetailResponse, error) {
	var answers []quizModel.QuizAnswerModel
	if err := db.
		Where("quiz_answer_attempt_id = ?", att.QuizAttemptID).
		Find(&answers).Error; err != nil {
		return nil, err
	}

	var questions []quizModel.QuizQuestionModel
	if err := db.Unscoped().
		Where("quiz_question_quiz_id = ?", quiz.QuizID).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]quizModel.QuizQuestionModel, len(questions))
	for _, q := range questions {
		byID[q.QuizQuestionID] = q
	}

	details := make([]quizDTO.AnswerDetail, 0, len(answers))
	for _, a := range answers {
		q := byID[a.QuizAnswerQuestionID]
		var opts []quizModel.QuestionOption
		if len(q.QuizQuestionOptions) > 0 {
			_ = json.Unmarshal(q.QuizQuestionOptions, &opts)
		}
		d := quizDTO.AnswerDetail{
			Answer:   a,
			Question: quizDTO.ToPublicQuestion(q, opts),
		}
		if revealCorrect {
			d.CorrectOptionID = q.QuizQuestionCorrectOptionID
		}
		details = append(details, d)
	}

	return &quizDTO.AttemptDetailResponse{
		Attempt: quizDTO.ToAttemptResponse(*att, quiz.QuizTimeLimitSec, now),
		Answers: details,
	}, nil
}
