// file: internals/features/lms/subscriptions/controller/subscription_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	enrollmentController "lmsku_backend/internals/features/lms/enrollments/controller"
	lookupModel "lmsku_backend/internals/features/lms/lookups/model"
	notifModel "lmsku_backend/internals/features/lms/notifications/model"
	notifService "lmsku_backend/internals/features/lms/notifications/service"
	subDTO "lmsku_backend/internals/features/lms/subscriptions/dto"
	subModel "lmsku_backend/internals/features/lms/subscriptions/model"
	subService "lmsku_backend/internals/features/lms/subscriptions/service"
	userModel "lmsku_backend/internals/features/users/user/model"
	helper "lmsku_backend/internals/helpers"
)

type SubscriptionController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{DB: db}
}

func (ctl *SubscriptionController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

/* =============================================================================
   Plan management
============================================================================= */

// POST /api/a/plans  (admin)
func (ctl *SubscriptionController) CreatePlan(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req subDTO.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	plan := subModel.PlanModel{
		PlanName:         strings.TrimSpace(req.PlanName),
		PlanDescription:  req.PlanDescription,
		PlanPrice:        req.PlanPrice,
		PlanDurationDays: req.PlanDurationDays,
		PlanFeatures:     req.PlanFeatures,
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		return replacePlanCourses(tx, plan.PlanID, req.PlanCourseIDs)
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create plan")
	}
	return helper.JsonCreated(c, "Plan created", plan)
}

func replacePlanCourses(tx *gorm.DB, planID uuid.UUID, courseIDs []uuid.UUID) error {
	if err := tx.Where("plan_course_plan_id = ?", planID).
		Delete(&subModel.PlanCourseModel{}).Error; err != nil {
		return err
	}
	for _, courseID := range courseIDs {
		link := subModel.PlanCourseModel{
			PlanCoursePlanID:   planID,
			PlanCourseCourseID: courseID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// GET /api/public/plans — active plans with their course ids.
func (ctl *SubscriptionController) ListPlans(c *fiber.Ctx) error {
	var plans []subModel.PlanModel
	if err := ctl.DB.
		Where("plan_is_active = ?", true).
		Order("plan_price ASC").
		Find(&plans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	out := make([]fiber.Map, 0, len(plans))
	for _, p := range plans {
		var courseIDs []uuid.UUID
		ctl.DB.Model(&subModel.PlanCourseModel{}).
			Where("plan_course_plan_id = ?", p.PlanID).
			Pluck("plan_course_course_id", &courseIDs)
		out = append(out, fiber.Map{
			"plan":       p,
			"course_ids": courseIDs,
		})
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /api/a/plans/:id  (admin)
func (ctl *SubscriptionController) UpdatePlan(c *fiber.Ctx) error {
	ctl.ensureValidator()

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid plan id")
	}

	var plan subModel.PlanModel
	if err := ctl.DB.Where("plan_id = ?", planID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var req subDTO.UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	updates := map[string]any{}
	if req.PlanName != nil {
		updates["plan_name"] = strings.TrimSpace(*req.PlanName)
	}
	if req.PlanDescription != nil {
		updates["plan_description"] = *req.PlanDescription
	}
	if req.PlanPrice != nil {
		updates["plan_price"] = *req.PlanPrice
	}
	if req.PlanDurationDays != nil {
		updates["plan_duration_days"] = *req.PlanDurationDays
	}
	if req.PlanFeatures != nil {
		updates["plan_features"] = req.PlanFeatures
	}
	if req.PlanIsActive != nil {
		updates["plan_is_active"] = *req.PlanIsActive
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&plan).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.PlanCourseIDs != nil {
			return replacePlanCourses(tx, planID, req.PlanCourseIDs)
		}
		return nil
	})
	if txErr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update plan")
	}
	return helper.JsonUpdated(c, "Plan updated", plan)
}

// DELETE /api/a/plans/:id  (admin, soft delete)
func (ctl *SubscriptionController) DeletePlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid plan id")
	}

	if err := ctl.DB.Where("plan_id = ?", planID).
		Delete(&subModel.PlanModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete plan")
	}
	return helper.JsonDeleted(c, "Plan deleted", fiber.Map{"plan_id": planID})
}

/* =============================================================================
   Checkout + status
============================================================================= */

// POST /api/u/subscriptions/checkout
// Creates a pending subscription and returns the Snap token for payment.
func (ctl *SubscriptionController) Checkout(c *fiber.Ctx) error {
	ctl.ensureValidator()

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req subDTO.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed")
	}

	var plan subModel.PlanModel
	if err := ctl.DB.
		Where("plan_id = ? AND plan_is_active = ?", req.PlanID, true).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	// one live subscription per user
	var live int64
	if err := ctl.DB.Model(&subModel.SubscriptionModel{}).
		Where("subscription_user_id = ? AND subscription_status IN ?",
			userID, []subModel.SubscriptionStatus{subModel.SubscriptionPending, subModel.SubscriptionActive}).
		Count(&live).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if live > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "You already have a pending or active subscription")
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	sub := subModel.SubscriptionModel{
		SubscriptionUserID:  userID,
		SubscriptionPlanID:  plan.PlanID,
		SubscriptionOrderID: fmt.Sprintf("SUB-%s", uuid.New().String()),
		SubscriptionStatus:  subModel.SubscriptionPending,
	}
	if err := ctl.DB.Create(&sub).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create subscription")
	}

	name := user.UserName
	if user.FullName != nil && *user.FullName != "" {
		name = *user.FullName
	}
	token, err := subService.GenerateSnapToken(sub.SubscriptionOrderID, plan.PlanPrice, name, user.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to create payment transaction")
	}

	return helper.JsonCreated(c, "Checkout created", fiber.Map{
		"subscription": sub,
		"snap_token":   token,
	})
}

// GET /api/u/subscriptions/mine
func (ctl *SubscriptionController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var subs []subModel.SubscriptionModel
	if err := ctl.DB.
		Where("subscription_user_id = ?", userID).
		Order("subscription_created_at DESC").
		Find(&subs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", subs)
}

// POST /api/u/subscriptions/:id/cancel
// Cancelling stops renewal bookkeeping; already-granted enrollments run out
// on their own expiry.
func (ctl *SubscriptionController) Cancel(c *fiber.Ctx) error {
	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subscription id")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sub subModel.SubscriptionModel
	if err := ctl.DB.Where("subscription_id = ?", subID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subscription not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if sub.SubscriptionUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not your subscription")
	}
	if sub.SubscriptionStatus != subModel.SubscriptionPending && sub.SubscriptionStatus != subModel.SubscriptionActive {
		return helper.JsonError(c, fiber.StatusConflict, "Subscription is not cancellable")
	}

	if err := ctl.DB.Model(&sub).
		Update("subscription_status", subModel.SubscriptionCancelled).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel subscription")
	}
	sub.SubscriptionStatus = subModel.SubscriptionCancelled
	return helper.JsonUpdated(c, "Subscription cancelled", sub)
}

/* =============================================================================
   Midtrans webhook
============================================================================= */

// POST /api/subscriptions/notification  (unauthenticated, called by Midtrans)
func (ctl *SubscriptionController) Webhook(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	orderID, _ := body["order_id"].(string)
	status, _ := body["transaction_status"].(string)
	if orderID == "" || status == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing order_id or transaction_status")
	}

	if err := ctl.applyPaymentStatus(orderID, status); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		log.Printf("[WEBHOOK] order %s: %v", orderID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notification")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"order_id": orderID})
}

// applyPaymentStatus maps a Midtrans transaction status onto the
// subscription lifecycle. Activation stamps the validity window and grants
// enrollments for every course the plan covers; an existing enrollment on
// one of them is left untouched.
func (ctl *SubscriptionController) applyPaymentStatus(orderID, status string) error {
	return ctl.DB.Transaction(func(tx *gorm.DB) error {
		var sub subModel.SubscriptionModel
		if err := tx.Where("subscription_order_id = ?", orderID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Unknown order")
			}
			return err
		}

		switch status {
		case "settlement", "capture", "success":
			if sub.SubscriptionStatus == subModel.SubscriptionActive {
				return nil // duplicate notification
			}

			var plan subModel.PlanModel
			if err := tx.Where("plan_id = ?", sub.SubscriptionPlanID).First(&plan).Error; err != nil {
				return err
			}

			now := time.Now()
			expires := now.Add(time.Duration(plan.PlanDurationDays) * 24 * time.Hour)
			if err := tx.Model(&sub).Updates(map[string]any{
				"subscription_status":     subModel.SubscriptionActive,
				"subscription_started_at": now,
				"subscription_expires_at": expires,
			}).Error; err != nil {
				return err
			}

			var courseIDs []uuid.UUID
			if err := tx.Model(&subModel.PlanCourseModel{}).
				Where("plan_course_plan_id = ?", plan.PlanID).
				Pluck("plan_course_course_id", &courseIDs).Error; err != nil {
				return err
			}
			for _, courseID := range courseIDs {
				_, err := enrollmentController.GrantEnrollment(
					tx, sub.SubscriptionUserID, courseID,
					lookupModel.EnrollmentTypeSubscription, &expires)
				if err != nil {
					var fe *fiber.Error
					if errors.As(err, &fe) && fe.Code == fiber.StatusConflict {
						continue // already enrolled
					}
					return err
				}
			}

			data, _ := json.Marshal(fiber.Map{
				"subscription_id": sub.SubscriptionID,
				"plan_id":         plan.PlanID,
			})
			notifService.NotifyUser(tx, sub.SubscriptionUserID,
				notifModel.KindSubscription,
				"Subscription activated",
				"Your subscription is now active: "+plan.PlanName,
				datatypes.JSON(data))
			return nil

		case "expire", "cancel", "deny", "failure":
			if sub.SubscriptionStatus != subModel.SubscriptionPending {
				return nil
			}
			return tx.Model(&sub).
				Update("subscription_status", subModel.SubscriptionCancelled).Error

		default:
			// pending and other intermediate states leave the row as-is
			return nil
		}
	})
}
