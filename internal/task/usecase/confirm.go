package usecase

import (
	"context"
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/internal/proposal"
	"boo-assistant/internal/task"
	"boo-assistant/internal/task/repository"
	"boo-assistant/pkg/gcalendar"
)

// Confirm persists a previously proposed task.
func (uc *implUseCase) Confirm(ctx context.Context, sc model.Scope, proposalID string) (task.ConfirmOutput, error) {
	p, ok := uc.proposals.Take(proposalID, sc.ChatID)
	if !ok {
		return task.ConfirmOutput{}, task.ErrProposalNotFound
	}

	due := p.DueAt
	created, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		ChatID: p.ChatID,
		Title:  p.Title,
		DueAt:  &due,
	})
	if err != nil {
		return task.ConfirmOutput{}, err
	}

	uc.l.Infof(ctx, "Confirm: chat=%d task=%d title=%q due=%s",
		sc.ChatID, created.ID, created.Title, due.Format(time.RFC3339))

	return task.ConfirmOutput{
		Task:         created,
		CalendarLink: uc.tryCreateCalendarEvent(ctx, p),
	}, nil
}

// Cancel discards a pending proposal without persisting anything. It is
// idempotent: an already-resolved or unknown proposal is still acknowledged,
// since the caller's intent — that the proposal not become a task — holds
// either way.
func (uc *implUseCase) Cancel(ctx context.Context, sc model.Scope, proposalID string) error {
	p, ok := uc.proposals.Take(proposalID, sc.ChatID)
	if !ok {
		uc.l.Debugf(ctx, "Cancel: chat=%d proposal=%s already resolved", sc.ChatID, proposalID)
		return nil
	}
	uc.l.Infof(ctx, "Cancel: chat=%d proposal=%s title=%q", sc.ChatID, proposalID, p.Title)
	return nil
}

// tryCreateCalendarEvent attempts to create a Google Calendar event.
// Returns the event HTML link, or empty string on failure (graceful degradation).
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, p proposal.Proposal) string {
	if uc.calendar == nil {
		return ""
	}

	start := p.DueAt.In(uc.parser.Location())
	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: uc.calendarID,
		Summary:    p.Title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Timezone:  uc.parser.Location().String(),
	})
	if err != nil {
		uc.l.Warnf(ctx, "Confirm: calendar event for %q failed: %v", p.Title, err)
		return ""
	}
	return event.HtmlLink
}
