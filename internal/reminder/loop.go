package reminder

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/internal/task/repository"
	pkgLog "boo-assistant/pkg/log"
)

// Notifier delivers reminder messages to a chat.
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// Loop periodically scans for overdue tasks and notifies their chats.
// Delivery is at-least-once: a task is marked notified only after the
// message was sent, so a crash in between may repeat the reminder.
type Loop struct {
	l         pkgLog.Logger
	repo      repository.Repository
	notifier  Notifier
	loc       *time.Location
	interval  time.Duration
	batchSize int
	inFlight  atomic.Bool
}

// New creates a reminder loop scanning every interval.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	notifier Notifier,
	loc *time.Location,
	interval time.Duration,
	batchSize int,
) *Loop {
	return &Loop{
		l:         l,
		repo:      repo,
		notifier:  notifier,
		loc:       loc,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run blocks until ctx is cancelled, scanning on every tick. A scan still
// running when the next tick fires is not doubled up, the tick is skipped.
func (lp *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(lp.interval)
	defer ticker.Stop()

	lp.l.Infof(ctx, "reminder: loop started, interval=%s batch=%d", lp.interval, lp.batchSize)

	for {
		select {
		case <-ctx.Done():
			lp.l.Infof(ctx, "reminder: loop stopped")
			return
		case <-ticker.C:
			if !lp.inFlight.CompareAndSwap(false, true) {
				lp.l.Warnf(ctx, "reminder: previous scan still running, skipping tick")
				continue
			}
			go func() {
				defer lp.inFlight.Store(false)
				lp.scan(ctx, time.Now().UTC())
			}()
		}
	}
}

// scan fetches due tasks and notifies their chats. Errors on individual
// tasks are logged and skipped so one broken chat cannot stall the rest.
func (lp *Loop) scan(ctx context.Context, now time.Time) {
	tasks, err := lp.repo.GetDueTasks(ctx, now, lp.batchSize)
	if err != nil {
		lp.l.Errorf(ctx, "reminder: due scan failed: %v", err)
		return
	}

	for _, t := range tasks {
		if err := lp.notifier.SendMessage(t.ChatID, lp.formatReminder(t)); err != nil {
			// Not marked notified: retried on the next tick.
			lp.l.Errorf(ctx, "reminder: delivery to chat %d for task %d failed: %v", t.ChatID, t.ID, err)
			continue
		}
		if err := lp.repo.MarkNotified(ctx, t.ID); err != nil {
			lp.l.Errorf(ctx, "reminder: mark notified for task %d failed: %v", t.ID, err)
		}
	}
}

func (lp *Loop) formatReminder(t model.Task) string {
	due := "без срока"
	if t.DueAt != nil {
		due = t.DueAt.In(lp.loc).Format("2006-01-02 15:04")
	}
	return fmt.Sprintf(
		"⏰ Напоминание!\n#%d — %s\nСрок (Якутск): %s\n\nКогда сделаешь — напиши: /done %d",
		t.ID, t.Title, due, t.ID,
	)
}
