package api

import (
	"errors"
	"net/http"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler holds the member service dependency.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- DTOs ---

type PurchasePlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type LogWorkoutRequest struct {
	Exercises       []domain.Exercise `json:"exercises" binding:"required"`
	DurationMinutes int               `json:"durationMinutes" binding:"min=0"`
	Notes           string            `json:"notes"`
}

// --- Handler Methods ---

// GetPlans lists every membership plan. Public, no auth gate.
func (h *MemberHandler) GetPlans(c *gin.Context) {
	plans, err := h.memberService.GetPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// PurchasePlan enrolls the caller in a plan, replacing any prior membership.
func (h *MemberHandler) PurchasePlan(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	var req PurchasePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	result, err := h.memberService.PurchasePlan(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) || errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to purchase plan.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(result.User, result.Plan))
}

// MarkAttendance records the caller's check-in for today.
func (h *MemberHandler) MarkAttendance(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	attendance, err := h.memberService.MarkAttendance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to check in.")
		}
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

// LogWorkout records a training session from caller-supplied fields.
func (h *MemberHandler) LogWorkout(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.memberService.LogWorkout(c.Request.Context(), userID, req.Exercises, req.DurationMinutes, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWorkout) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// GetWorkouts returns the caller's workout history, most recent first.
func (h *MemberHandler) GetWorkouts(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	workouts, err := h.memberService.GetWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// GetDiets returns the diet plans assigned to the caller, newest first.
func (h *MemberHandler) GetDiets(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	diets, err := h.memberService.GetDiets(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve diets.")
		return
	}
	if diets == nil {
		diets = []domain.Diet{}
	}
	c.JSON(http.StatusOK, diets)
}

// callerID resolves the authenticated caller's ObjectID from the gin context.
func callerID(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(idStr)
}
