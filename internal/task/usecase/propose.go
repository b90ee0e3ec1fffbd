package usecase

import (
	"context"
	"strings"
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/internal/task"
)

// Propose extracts a task candidate from user text and stores it pending confirmation.
func (uc *implUseCase) Propose(ctx context.Context, sc model.Scope, input task.ProposeInput) (task.ProposeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return task.ProposeOutput{}, task.ErrEmptyInput
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	parsed, ok := uc.parser.Parse(input.Text, now)
	if !ok {
		return task.ProposeOutput{}, task.ErrNoDateFound
	}

	id := uc.proposals.Put(sc.ChatID, parsed)
	uc.l.Infof(ctx, "Propose: chat=%d proposal=%s title=%q due=%s kind=%s",
		sc.ChatID, id, parsed.Title, parsed.DueAt.Format(time.RFC3339), parsed.Kind)

	return task.ProposeOutput{
		ProposalID: id,
		Title:      parsed.Title,
		DueAt:      parsed.DueAt.In(uc.parser.Location()),
		Kind:       parsed.Kind,
	}, nil
}
