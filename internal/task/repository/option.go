package repository

import "time"

// CreateTaskOptions holds the parameters for inserting a new task.
type CreateTaskOptions struct {
	ChatID int64
	Title  string
	DueAt  *time.Time // nil when the task has no deadline
}

// ListOpenTasksOptions holds filter parameters for listing a chat's tasks.
type ListOpenTasksOptions struct {
	ChatID int64
	Limit  int // Max number of results (default 20)
}
