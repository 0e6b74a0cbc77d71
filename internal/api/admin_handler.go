package api

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler holds the admin service dependency.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- DTOs ---

type UpdateMemberStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type AddEquipmentRequest struct {
	Name               string                 `json:"name" binding:"required"`
	Status             domain.EquipmentStatus `json:"status"`
	LastMaintained     *time.Time             `json:"lastMaintained"`
	NextMaintenanceDue *time.Time             `json:"nextMaintenanceDue"`
}

// UpdateEquipmentRequest restricts partial updates to the allow-listed
// mutable fields; anything else in the body is ignored.
type UpdateEquipmentRequest struct {
	Name               *string                 `json:"name"`
	Status             *domain.EquipmentStatus `json:"status"`
	LastMaintained     *time.Time              `json:"lastMaintained"`
	NextMaintenanceDue *time.Time              `json:"nextMaintenanceDue"`
}

type CreatePlanRequest struct {
	Name           string   `json:"name" binding:"required"`
	Price          float64  `json:"price" binding:"min=0"`
	DurationMonths int      `json:"durationMonths" binding:"required,min=1"`
	Features       []string `json:"features"`
}

type EquipmentPhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// GetStats returns the dashboard summary: member/trainer counts, active
// membership count and estimated revenue.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMembers returns all members with their membership plan resolved.
func (h *AdminHandler) GetMembers(c *gin.Context) {
	members, err := h.adminService.GetMembers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve members.")
		return
	}

	out := make([]UserResponse, 0, len(members))
	for i := range members {
		out = append(out, MapUserToResponse(&members[i].User, members[i].Plan))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateMemberStatus activates or deactivates a member's membership.
func (h *AdminHandler) UpdateMemberStatus(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	var req UpdateMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.adminService.UpdateMemberStatus(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update member status.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user, nil))
}

// GetEquipment lists all equipment.
func (h *AdminHandler) GetEquipment(c *gin.Context) {
	equipment, err := h.adminService.GetEquipment(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment.")
		return
	}
	if equipment == nil {
		equipment = []domain.Equipment{}
	}
	c.JSON(http.StatusOK, equipment)
}

// AddEquipment creates a new piece of equipment.
func (h *AdminHandler) AddEquipment(c *gin.Context) {
	var req AddEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	equipment := &domain.Equipment{
		Name:               req.Name,
		Status:             req.Status,
		NextMaintenanceDue: req.NextMaintenanceDue,
	}
	if req.LastMaintained != nil {
		equipment.LastMaintained = *req.LastMaintained
	}

	created, err := h.adminService.AddEquipment(c.Request.Context(), equipment)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEquipment) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add equipment.")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateEquipment applies a partial update to a piece of equipment.
func (h *AdminHandler) UpdateEquipment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := repository.EquipmentPatch{
		Name:               req.Name,
		Status:             req.Status,
		LastMaintained:     req.LastMaintained,
		NextMaintenanceDue: req.NextMaintenanceDue,
	}

	updated, err := h.adminService.UpdateEquipment(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidEquipment) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update equipment.")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CreatePlan adds a new membership plan.
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan := &domain.Plan{
		Name:           req.Name,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Features:       req.Features,
	}

	created, err := h.adminService.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlan) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// RequestEquipmentPhotoUpload returns a presigned PUT URL for an equipment
// photo.
func (h *AdminHandler) RequestEquipmentPhotoUpload(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	var req EquipmentPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	grant, err := h.adminService.RequestEquipmentPhotoUpload(c.Request.Context(), id, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidPhotoType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}

	c.JSON(http.StatusOK, grant)
}

// GetEquipmentPhotoURL returns a presigned GET URL for the equipment's photo.
func (h *AdminHandler) GetEquipmentPhotoURL(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	url, err := h.adminService.GetEquipmentPhotoURL(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) || errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
