package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %q", string(p))
	}
	return string(p), nil
}

func (p *Priority) Scan(value interface{}) error {
	s, err := scanEnum(value)
	if err != nil {
		return err
	}
	if !Priority(s).Valid() {
		return fmt.Errorf("invalid priority %q in database", s)
	}
	*p = Priority(s)
	return nil
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID      *uuid.UUID `gorm:"type:uuid" json:"goal_id"`
	Title       string     `gorm:"not null" json:"title"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	Priority    Priority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *Date      `gorm:"type:date" json:"due_date"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// scanEnum normalizes the raw value a driver hands back for an enum column.
func scanEnum(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into enum", value)
	}
}
