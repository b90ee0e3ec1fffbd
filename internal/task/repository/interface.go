package repository

import (
	"context"
	"time"

	"boo-assistant/internal/model"
)

// Repository defines all data access methods for the Task entity.
type Repository interface {
	// CreateTask inserts a new task row and returns the created entity.
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)

	// ListOpenTasks returns the chat's incomplete tasks ordered by due time
	// ascending, tasks without a deadline last.
	ListOpenTasks(ctx context.Context, opt ListOpenTasksOptions) ([]model.Task, error)

	// CompleteTask marks the chat's incomplete task as done. Returns a
	// zero-value Task (ID == 0) when no matching row exists.
	CompleteTask(ctx context.Context, chatID, taskID int64) (model.Task, error)

	// GetDueTasks returns incomplete, unnotified tasks whose due time has
	// passed, oldest first.
	GetDueTasks(ctx context.Context, now time.Time, limit int) ([]model.Task, error)

	// MarkNotified records that a reminder was delivered for the task.
	MarkNotified(ctx context.Context, taskID int64) error
}
