package task

import (
	"context"

	"boo-assistant/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Propose extracts a task candidate from free-form user text and stores it
	// as a pending proposal. Returns ErrNoDateFound when the text does not
	// contain a recognizable date.
	Propose(ctx context.Context, sc model.Scope, input ProposeInput) (ProposeOutput, error)

	// Confirm persists a previously proposed task. Returns ErrProposalNotFound
	// when the proposal is unknown, already resolved, or belongs to another chat.
	Confirm(ctx context.Context, sc model.Scope, proposalID string) (ConfirmOutput, error)

	// Cancel discards a pending proposal without persisting anything.
	// Idempotent: cancelling an unknown or already-resolved proposal is
	// still a success.
	Cancel(ctx context.Context, sc model.Scope, proposalID string) error

	// ListOpen returns the chat's incomplete tasks, soonest deadline first.
	ListOpen(ctx context.Context, sc model.Scope) ([]model.Task, error)

	// Complete marks the chat's task as done. Returns ErrTaskNotFound when the
	// task does not exist, is already completed, or belongs to another chat.
	Complete(ctx context.Context, sc model.Scope, taskID int64) (model.Task, error)
}
