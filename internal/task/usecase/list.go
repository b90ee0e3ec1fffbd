package usecase

import (
	"context"

	"boo-assistant/internal/model"
	"boo-assistant/internal/task"
	"boo-assistant/internal/task/repository"
)

// ListOpen returns the chat's incomplete tasks, soonest deadline first.
func (uc *implUseCase) ListOpen(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	tasks, err := uc.repo.ListOpenTasks(ctx, repository.ListOpenTasksOptions{
		ChatID: sc.ChatID,
		Limit:  uc.listLimit,
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Complete marks the chat's task as done.
func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error) {
	t, err := uc.repo.CompleteTask(ctx, sc.ChatID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	if t.ID == 0 {
		return model.Task{}, task.ErrTaskNotFound
	}
	uc.l.Infof(ctx, "Complete: chat=%d task=%d title=%q", sc.ChatID, t.ID, t.Title)
	return t, nil
}
