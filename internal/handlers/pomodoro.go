package handlers

import (
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

const defaultSessionMinutes = 25

type PomodoroHandler struct{}

func NewPomodoroHandler() *PomodoroHandler {
	return &PomodoroHandler{}
}

// ListSessions returns the current user's sessions, most recent first
func (h *PomodoroHandler) ListSessions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessions := []models.PomodoroSession{}
	if err := database.GetDB().
		Scopes(database.OwnedBy(userID)).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch pomodoro sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// StartSession starts a new pomodoro session. When a task is referenced,
// the insert selects from tasks filtered by id AND user_id in one
// statement: a task that does not exist and a task owned by another user
// both produce zero rows, and the caller sees the same 404 either way.
func (h *PomodoroHandler) StartSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type StartSessionRequest struct {
		TaskID          *uuid.UUID          `json:"task_id"`
		SessionType     *models.SessionType `json:"session_type" binding:"omitempty,oneof=focus short_break long_break"`
		DurationMinutes *int                `json:"duration_minutes" binding:"omitempty,min=1"`
	}

	var req StartSessionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	sessionType := models.SessionTypeFocus
	if req.SessionType != nil {
		sessionType = *req.SessionType
	}
	duration := defaultSessionMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	startedAt := time.Now()

	if req.TaskID == nil {
		session := models.PomodoroSession{
			UserID:          userID,
			SessionType:     sessionType,
			DurationMinutes: duration,
			StartedAt:       startedAt,
		}
		if err := database.GetDB().Create(&session).Error; err != nil {
			apierrors.InternalError(c, "Failed to start pomodoro session")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"session": session})
		return
	}

	sessionID := uuid.New()
	result := database.GetDB().Exec(
		`INSERT INTO pomodoro_sessions (id, user_id, task_id, session_type, duration_minutes, started_at)
		 SELECT ?, ?, id, ?, ?, ? FROM tasks WHERE id = ? AND user_id = ?`,
		sessionID, userID, sessionType, duration, startedAt, *req.TaskID, userID,
	)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to start pomodoro session")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var session models.PomodoroSession
	if err := database.GetDB().Where("id = ?", sessionID).First(&session).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch pomodoro session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// EndSession closes a session. Ending twice is harmless: ended_at keeps
// its first value, only the notes merge on a later call.
func (h *PomodoroHandler) EndSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid session ID")
		return
	}

	type EndSessionRequest struct {
		Notes *string `json:"notes"`
	}

	var req EndSessionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{
		"ended_at": gorm.Expr("COALESCE(ended_at, ?)", time.Now()),
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	result := database.GetDB().
		Model(&models.PomodoroSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(updates)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to end pomodoro session")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Session not found")
		return
	}

	var session models.PomodoroSession
	if err := database.GetDB().Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch pomodoro session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// DeleteSession removes a session owned by the current user
func (h *PomodoroHandler) DeleteSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid session ID")
		return
	}

	result := database.GetDB().
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&models.PomodoroSession{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete pomodoro session")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Session not found")
		return
	}

	c.Status(http.StatusNoContent)
}
