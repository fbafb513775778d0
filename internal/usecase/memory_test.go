package usecase

import (
	"testing"

	"finassist/internal/domain"
)

func TestMemoryAppendAndMessages(t *testing.T) {
	m := NewConversationMemory(20)

	m.Append(domain.RoleUser, "hello", nil)
	m.Append(domain.RoleAssistant, "hi there", []string{"📄 Uploaded Documents"})

	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}

	turns := m.Turns()
	if len(turns[1].Sources) != 1 {
		t.Error("assistant turn lost its source metadata")
	}
}

func TestMemoryTruncatesOldest(t *testing.T) {
	m := NewConversationMemory(4)

	for i := 0; i < 10; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		m.Append(role, string(rune('a'+i)), nil)
	}

	if m.Len() != 4 {
		t.Fatalf("expected 4 turns after truncation, got %d", m.Len())
	}

	turns := m.Turns()
	if turns[0].Content != "g" || turns[3].Content != "j" {
		t.Errorf("truncation kept the wrong end: first=%q last=%q", turns[0].Content, turns[3].Content)
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewConversationMemory(20)
	m.Append(domain.RoleUser, "hello", nil)
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected empty memory after clear, got %d turns", m.Len())
	}
}

func TestMemoryHasSessionID(t *testing.T) {
	a := NewConversationMemory(20)
	b := NewConversationMemory(20)
	if a.ID() == "" {
		t.Error("expected non-empty session id")
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct session ids")
	}
}
