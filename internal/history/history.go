package history

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"boo-assistant/pkg/yandexgpt"
)

// Store keeps a bounded per-chat conversation history for the LLM fallback.
// Inactive chats expire automatically; losing history only degrades the
// small-talk context, never task state. The LRU is internally synchronized,
// but Append is a read-modify-write, so the store carries its own lock:
// every update is handled in its own goroutine and concurrent appends for
// the same chat must not lose entries.
type Store struct {
	mu          sync.Mutex
	chats       *expirable.LRU[int64, []yandexgpt.Message]
	maxMessages int
}

// NewStore creates a history store keeping at most maxMessages per chat.
func NewStore(maxChats, maxMessages int, ttl time.Duration) *Store {
	return &Store{
		chats:       expirable.NewLRU[int64, []yandexgpt.Message](maxChats, nil, ttl),
		maxMessages: maxMessages,
	}
}

// Append records a message in the chat's history, trimming the oldest
// entries beyond the per-chat cap.
func (s *Store) Append(chatID int64, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, _ := s.chats.Get(chatID)
	msgs = append(msgs, yandexgpt.Message{Role: role, Content: content})
	if len(msgs) > s.maxMessages {
		msgs = msgs[len(msgs)-s.maxMessages:]
	}
	s.chats.Add(chatID, msgs)
}

// Get returns a copy of the chat's history, oldest first.
func (s *Store) Get(chatID int64) []yandexgpt.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.chats.Get(chatID)
	if !ok {
		return nil
	}
	out := make([]yandexgpt.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Clear drops the chat's history.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats.Remove(chatID)
}
