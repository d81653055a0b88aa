package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/productivity-api/internal/database"
	apierrors "github.com/yukikurage/productivity-api/internal/errors"
	"github.com/yukikurage/productivity-api/internal/middleware"
	"github.com/yukikurage/productivity-api/internal/models"
	"gorm.io/gorm"
)

type GoalHandler struct{}

func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// ListGoals returns all goals owned by the current user
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goals := []models.Goal{}
	if err := database.GetDB().Scopes(database.OwnedBy(userID)).Find(&goals).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch goals")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// CreateGoal creates a new goal. Goals always start out active.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGoalRequest struct {
		Title       string       `json:"title" binding:"required"`
		Description *string      `json:"description"`
		Deadline    *models.Date `json:"deadline"`
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      models.GoalStatusActive,
	}

	if err := database.GetDB().Create(&goal).Error; err != nil {
		apierrors.InternalError(c, "Failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal applies a partial update to a goal owned by the current user
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid goal ID")
		return
	}

	type UpdateGoalRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Deadline    *models.Date       `json:"deadline"`
		Status      *models.GoalStatus `json:"status" binding:"omitempty,oneof=active completed abandoned"`
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		result := database.GetDB().
			Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Updates(updates)
		if result.Error != nil {
			apierrors.InternalError(c, "Failed to update goal")
			return
		}
		if result.RowsAffected == 0 {
			apierrors.NotFound(c, "Goal not found")
			return
		}
	}

	var goal models.Goal
	if err := database.GetDB().Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Goal not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a goal owned by the current user
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid goal ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete goal")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Goal not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteGoal marks a goal as completed
func (h *GoalHandler) CompleteGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid goal ID")
		return
	}

	result := database.GetDB().
		Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Update("status", models.GoalStatusCompleted)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to complete goal")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Goal not found")
		return
	}

	var goal models.Goal
	if err := database.GetDB().Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch goal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
