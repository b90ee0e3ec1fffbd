package proposal

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"boo-assistant/pkg/nlp"
)

// Proposal is a pending task candidate awaiting confirmation, keyed by an
// opaque id that is never persisted or reused.
type Proposal struct {
	ID     string
	ChatID int64
	Title  string
	DueAt  time.Time
	Kind   nlp.Kind
}

// Store holds unconfirmed proposals in memory. It is safe for concurrent
// use: Put and Take are linearizable, so two Take calls on the same id
// resolve to exactly one winner. Proposals live until taken or the process
// restarts; no cap or TTL is enforced.
type Store struct {
	mu      sync.Mutex
	pending map[string]Proposal
}

// NewStore creates an empty proposal store.
func NewStore() *Store {
	return &Store{pending: make(map[string]Proposal)}
}

// Put stores a candidate for the given chat and returns its fresh id.
func (s *Store) Put(chatID int64, candidate nlp.ParsedTask) string {
	p := Proposal{
		ID:     uuid.NewString(),
		ChatID: chatID,
		Title:  candidate.Title,
		DueAt:  candidate.DueAt,
		Kind:   candidate.Kind,
	}

	s.mu.Lock()
	s.pending[p.ID] = p
	s.mu.Unlock()

	return p.ID
}

// Take atomically removes and returns the proposal with the given id,
// but only if it belongs to chatID. A mismatched chat leaves the proposal
// pending, so one chat can never consume another chat's proposal. The
// second return value is false when the id is unknown, already taken, or
// owned by a different chat.
func (s *Store) Take(id string, chatID int64) (Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok || p.ChatID != chatID {
		return Proposal{}, false
	}
	delete(s.pending, id)
	return p, true
}

// Len returns the number of outstanding proposals.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
