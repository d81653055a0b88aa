package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionType string

const (
	SessionTypeFocus      SessionType = "focus"
	SessionTypeShortBreak SessionType = "short_break"
	SessionTypeLongBreak  SessionType = "long_break"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeFocus, SessionTypeShortBreak, SessionTypeLongBreak:
		return true
	}
	return false
}

func (t SessionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid session type %q", string(t))
	}
	return string(t), nil
}

func (t *SessionType) Scan(value interface{}) error {
	raw, err := scanEnum(value)
	if err != nil {
		return err
	}
	if !SessionType(raw).Valid() {
		return fmt.Errorf("invalid session type %q in database", raw)
	}
	*t = SessionType(raw)
	return nil
}

type PomodoroSession struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskID          *uuid.UUID  `gorm:"type:uuid" json:"task_id"`
	SessionType     SessionType `gorm:"type:varchar(20);not null;default:'focus'" json:"session_type"`
	DurationMinutes int         `gorm:"not null;default:25" json:"duration_minutes"`
	StartedAt       time.Time   `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at"`
	Notes           *string     `gorm:"type:text" json:"notes"`
}

func (s *PomodoroSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
