package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func (f Frequency) Value() (driver.Value, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid frequency %q", string(f))
	}
	return string(f), nil
}

func (f *Frequency) Scan(value interface{}) error {
	raw, err := scanEnum(value)
	if err != nil {
		return err
	}
	if !Frequency(raw).Valid() {
		return fmt.Errorf("invalid frequency %q in database", raw)
	}
	*f = Frequency(raw)
	return nil
}

type Habit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Frequency Frequency `gorm:"type:varchar(20);not null;default:'daily'" json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// HabitCompletion records that a habit was done on a given date. The
// composite unique index is what turns a duplicate completion into a
// conflict instead of a second row.
type HabitCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_completions_habit_date" json:"habit_id"`
	CompletedOn Date      `gorm:"type:date;not null;uniqueIndex:idx_habit_completions_habit_date" json:"completed_on"`
}

func (hc *HabitCompletion) BeforeCreate(tx *gorm.DB) error {
	if hc.ID == uuid.Nil {
		hc.ID = uuid.New()
	}
	return nil
}
