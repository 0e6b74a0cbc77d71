package api

import (
	"errors"
	"net/http"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

type AssignDietRequest struct {
	UserID string        `json:"userId" binding:"required"`
	Name   string        `json:"name"`
	Meals  []domain.Meal `json:"meals" binding:"required"`
}

// --- Handler Methods ---

// GetClients returns every member, password hash excluded.
func (h *TrainerHandler) GetClients(c *gin.Context) {
	clients, err := h.trainerService.GetClients(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve clients.")
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(clients))
}

// AssignDiet creates a diet plan for a client on behalf of the caller.
func (h *TrainerHandler) AssignDiet(c *gin.Context) {
	trainerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	var req AssignDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}

	diet, err := h.trainerService.AssignDiet(c.Request.Context(), trainerID, userID, req.Name, req.Meals)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidDiet) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to assign diet.")
		}
		return
	}

	c.JSON(http.StatusCreated, diet)
}

// GetClientProgress returns a client's workout history, most recent first.
func (h *TrainerHandler) GetClientProgress(c *gin.Context) {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}

	workouts, err := h.trainerService.GetClientProgress(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve client progress.")
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}
