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

type HabitHandler struct{}

func NewHabitHandler() *HabitHandler {
	return &HabitHandler{}
}

// ListHabits returns all habits owned by the current user
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habits := []models.Habit{}
	if err := database.GetDB().Scopes(database.OwnedBy(userID)).Find(&habits).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch habits")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// CreateHabit creates a new habit for the current user
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateHabitRequest struct {
		Name      string            `json:"name" binding:"required"`
		Frequency *models.Frequency `json:"frequency" binding:"omitempty,oneof=daily weekly"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit := models.Habit{
		UserID:    userID,
		Name:      req.Name,
		Frequency: models.FrequencyDaily,
	}
	if req.Frequency != nil {
		habit.Frequency = *req.Frequency
	}

	if err := database.GetDB().Create(&habit).Error; err != nil {
		apierrors.InternalError(c, "Failed to create habit")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// UpdateHabit applies a partial update to a habit owned by the current user
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	type UpdateHabitRequest struct {
		Name      *string           `json:"name"`
		Frequency *models.Frequency `json:"frequency" binding:"omitempty,oneof=daily weekly"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}

	if len(updates) > 0 {
		result := database.GetDB().
			Model(&models.Habit{}).
			Where("id = ? AND user_id = ?", habitID, userID).
			Updates(updates)
		if result.Error != nil {
			apierrors.InternalError(c, "Failed to update habit")
			return
		}
		if result.RowsAffected == 0 {
			apierrors.NotFound(c, "Habit not found")
			return
		}
	}

	var habit models.Habit
	if err := database.GetDB().Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Habit not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch habit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// DeleteHabit removes a habit owned by the current user
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", habitID, userID).
		Delete(&models.Habit{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete habit")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Habit not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteHabit records a completion for a habit on a date. The insert
// selects from habits filtered by id AND user_id, so "habit missing" and
// "habit owned by someone else" are the same outcome: zero rows inserted.
// A duplicate (habit_id, completed_on) pair trips the unique index; there
// is no pre-check that could race.
func (h *HabitHandler) CompleteHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	type CompleteHabitRequest struct {
		CompletedOn *models.Date `json:"completed_on"`
	}

	var req CompleteHabitRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	completedOn := models.Today()
	if req.CompletedOn != nil {
		completedOn = *req.CompletedOn
	}

	completionID := uuid.New()
	result := database.GetDB().Exec(
		`INSERT INTO habit_completions (id, habit_id, completed_on)
		 SELECT ?, id, ? FROM habits WHERE id = ? AND user_id = ?`,
		completionID, completedOn, habitID, userID,
	)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			apierrors.Conflict(c, "Habit already completed for that date")
			return
		}
		apierrors.InternalError(c, "Failed to complete habit")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Habit not found")
		return
	}

	var completion models.HabitCompletion
	if err := database.GetDB().Where("id = ?", completionID).First(&completion).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch completion")
		return
	}

	c.JSON(http.StatusOK, gin.H{"completion": completion})
}
