package usecase

import (
	"sync"

	"github.com/google/uuid"

	"finassist/internal/domain"
)

// ConversationMemory is the ordered, bounded log of turns for one
// session. Turns are appended, never mutated; once the log exceeds the
// maximum it is truncated from the oldest end. It has no durable
// backing and lives only as long as the session.
type ConversationMemory struct {
	id       string
	maxTurns int

	mu    sync.Mutex
	turns []domain.Turn
}

// NewConversationMemory creates a session-scoped memory holding at
// most maxTurns entries. maxTurns < 1 falls back to 20.
func NewConversationMemory(maxTurns int) *ConversationMemory {
	if maxTurns < 1 {
		maxTurns = 20
	}
	return &ConversationMemory{
		id:       uuid.NewString(),
		maxTurns: maxTurns,
	}
}

// ID returns the session identifier.
func (m *ConversationMemory) ID() string {
	return m.id
}

// Append records a turn, dropping the oldest entries past the bound.
func (m *ConversationMemory) Append(role, content string, sources []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, domain.Turn{Role: role, Content: content, Sources: sources})
	if excess := len(m.turns) - m.maxTurns; excess > 0 {
		m.turns = append([]domain.Turn(nil), m.turns[excess:]...)
	}
}

// Messages returns role and content only, in order, for the model call.
func (m *ConversationMemory) Messages() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]domain.Message, len(m.turns))
	for i, t := range m.turns {
		msgs[i] = domain.Message{Role: t.Role, Content: t.Content}
	}
	return msgs
}

// Turns returns a copy of the full log including source metadata.
func (m *ConversationMemory) Turns() []domain.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Clear discards the whole log.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}

// Len returns the number of recorded turns.
func (m *ConversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}
