package model

import "time"

// Task is a persisted task owned by one chat.
// DueAt is stored in UTC; nil means "no deadline" and such tasks never
// appear in the due scan.
type Task struct {
	ID        int64
	ChatID    int64
	Title     string
	DueAt     *time.Time
	Completed bool
	Notified  bool
}
