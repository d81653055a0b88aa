package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Every list query filters on user_id
		{"tasks", "idx_tasks_user_id", "user_id"},
		{"goals", "idx_goals_user_id", "user_id"},
		{"habits", "idx_habits_user_id", "user_id"},
		{"pomodoro_sessions", "idx_pomodoro_sessions_user_id", "user_id"},

		// Session listing orders by start time
		{"pomodoro_sessions", "idx_pomodoro_sessions_started_at", "started_at"},

		// Completion lookups join back to their habit
		{"habit_completions", "idx_habit_completions_habit_id", "habit_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
