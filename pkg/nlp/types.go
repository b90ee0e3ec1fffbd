package nlp

import "time"

// Kind classifies a parsed task; it only affects the default time of day.
type Kind string

const (
	KindDeadline Kind = "deadline"
	KindTask     Kind = "task"
)

// ParsedTask is the structured result of parsing free text.
// DueAt is always set and always in UTC.
type ParsedTask struct {
	Title string
	DueAt time.Time
	Kind  Kind
}
