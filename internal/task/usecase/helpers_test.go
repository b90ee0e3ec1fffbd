package usecase

import (
	"context"
	"sync"
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/internal/task/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock repository backed by an in-memory slice.
type mockRepository struct {
	mu     sync.Mutex
	nextID int64
	tasks  []model.Task

	createErr error
	listErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	if m.createErr != nil {
		return model.Task{}, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := model.Task{
		ID:     m.nextID,
		ChatID: opt.ChatID,
		Title:  opt.Title,
		DueAt:  opt.DueAt,
	}
	m.nextID++
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *mockRepository) ListOpenTasks(ctx context.Context, opt repository.ListOpenTasksOptions) ([]model.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.tasks {
		if t.ChatID == opt.ChatID && !t.Completed {
			out = append(out, t)
		}
		if opt.Limit > 0 && len(out) == opt.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockRepository) CompleteTask(ctx context.Context, chatID, taskID int64) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == taskID && t.ChatID == chatID && !t.Completed {
			m.tasks[i].Completed = true
			return m.tasks[i], nil
		}
	}
	return model.Task{}, nil
}

func (m *mockRepository) GetDueTasks(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.tasks {
		if t.Completed || t.Notified || t.DueAt == nil || t.DueAt.After(now) {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockRepository) MarkNotified(ctx context.Context, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == taskID {
			m.tasks[i].Notified = true
			return nil
		}
	}
	return nil
}
