package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/productivity-api/internal/database"
	apierrors "github.com/yukikurage/productivity-api/internal/errors"
	"github.com/yukikurage/productivity-api/internal/middleware"
	"github.com/yukikurage/productivity-api/internal/models"
	"gorm.io/gorm"
)

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// ListTasks returns all tasks owned by the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks := []models.Task{}
	if err := database.GetDB().Scopes(database.OwnedBy(userID)).Find(&tasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		GoalID   *uuid.UUID       `json:"goal_id"`
		Title    string           `json:"title" binding:"required"`
		Notes    *string          `json:"notes"`
		Priority *models.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
		DueDate  *models.Date     `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task := models.Task{
		UserID:   userID,
		GoalID:   req.GoalID,
		Title:    req.Title,
		Notes:    req.Notes,
		Priority: models.PriorityMedium,
		DueDate:  req.DueDate,
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// UpdateTask applies a partial update to a task owned by the current user.
// Omitted fields keep their value. Flipping completed stamps or clears
// completed_at inside the same UPDATE statement, so there is no window for
// a concurrent writer between the read of the old value and the write.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title     *string          `json:"title"`
		Notes     *string          `json:"notes"`
		Priority  *models.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
		DueDate   *models.Date     `json:"due_date"`
		Completed *bool            `json:"completed"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
		if *req.Completed {
			// completed on the right-hand side is the pre-update value:
			// a fresh completion gets stamped, a re-confirmation keeps
			// its original stamp.
			updates["completed_at"] = gorm.Expr("CASE WHEN completed THEN completed_at ELSE ? END", time.Now())
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		result := database.GetDB().
			Model(&models.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			Updates(updates)
		if result.Error != nil {
			apierrors.InternalError(c, "Failed to update task")
			return
		}
		if result.RowsAffected == 0 {
			apierrors.NotFound(c, "Task not found")
			return
		}
	}

	var task models.Task
	if err := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask removes a task owned by the current user
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteTask marks a task as completed and stamps the completion time
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	result := database.GetDB().
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": time.Now(),
		})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to complete task")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var task models.Task
	if err := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
