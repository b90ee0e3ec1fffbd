package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput       = errors.New("input text is empty")
	ErrNoDateFound      = errors.New("no date found in input")
	ErrProposalNotFound = errors.New("proposal not found or already resolved")
	ErrTaskNotFound     = errors.New("task not found")
)
