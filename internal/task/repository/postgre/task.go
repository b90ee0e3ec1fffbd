package postgre

import (
	"context"
	"database/sql"
	"time"

	"boo-assistant/internal/model"
	repo "boo-assistant/internal/task/repository"
)

const defaultListLimit = 20

// CreateTask inserts a new task row and returns the created entity.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	const query = `
		INSERT INTO tasks (chat_id, title, due_at, completed, notified)
		VALUES ($1, $2, $3, FALSE, FALSE)
		RETURNING id, chat_id, title, due_at, completed, notified`

	var t model.Task
	err := r.db.QueryRowContext(ctx, query, opt.ChatID, opt.Title, opt.DueAt).Scan(
		&t.ID, &t.ChatID, &t.Title, &t.DueAt, &t.Completed, &t.Notified,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}
	return t, nil
}

// ListOpenTasks returns the chat's incomplete tasks, soonest deadline first.
func (r *implRepository) ListOpenTasks(ctx context.Context, opt repo.ListOpenTasksOptions) ([]model.Task, error) {
	const query = `
		SELECT id, chat_id, title, due_at, completed, notified
		FROM tasks
		WHERE chat_id = $1 AND completed = FALSE
		ORDER BY due_at ASC NULLS LAST, id ASC
		LIMIT $2`

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, query, opt.ChatID, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListOpenTasks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	return scanTasks(rows)
}

// CompleteTask marks the chat's incomplete task as done.
// Returns zero-value Task (ID == 0) when not found — do NOT return error for not-found.
func (r *implRepository) CompleteTask(ctx context.Context, chatID, taskID int64) (model.Task, error) {
	const query = `
		UPDATE tasks
		SET completed = TRUE
		WHERE id = $1 AND chat_id = $2 AND completed = FALSE
		RETURNING id, chat_id, title, due_at, completed, notified`

	var t model.Task
	err := r.db.QueryRowContext(ctx, query, taskID, chatID).Scan(
		&t.ID, &t.ChatID, &t.Title, &t.DueAt, &t.Completed, &t.Notified,
	)
	if err == sql.ErrNoRows {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CompleteTask"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}
	return t, nil
}

// GetDueTasks returns incomplete, unnotified tasks whose due time has passed.
func (r *implRepository) GetDueTasks(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	const query = `
		SELECT id, chat_id, title, due_at, completed, notified
		FROM tasks
		WHERE completed = FALSE AND notified = FALSE
		      AND due_at IS NOT NULL AND due_at <= $1
		ORDER BY due_at ASC, id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetDueTasks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	return scanTasks(rows)
}

// MarkNotified records that a reminder was delivered for the task.
func (r *implRepository) MarkNotified(ctx context.Context, taskID int64) error {
	const query = `UPDATE tasks SET notified = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, taskID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MarkNotified"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ChatID, &t.Title, &t.DueAt, &t.Completed, &t.Notified); err != nil {
			return nil, repo.ErrFailedToList
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}
