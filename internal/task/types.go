package task

import (
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/pkg/nlp"
)

// ProposeInput is the input for the propose operation.
type ProposeInput struct {
	Text string    // Raw message text from the user
	Now  time.Time // Reference time for relative date resolution
}

// ProposeOutput describes the extracted candidate awaiting confirmation.
type ProposeOutput struct {
	ProposalID string
	Title      string
	DueAt      time.Time // Local to the assistant's timezone
	Kind       nlp.Kind
}

// ConfirmOutput is the result of persisting a confirmed proposal.
type ConfirmOutput struct {
	Task         model.Task
	CalendarLink string // Google Calendar event link, empty when not created
}
