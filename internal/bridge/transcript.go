package bridge

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adrianariton/cellbridge/internal/domain"
)

// Transcript records the conversation as an append-only sequence.
type Transcript interface {
	Append(entry domain.Entry) error
	Entries() ([]domain.Entry, error)
}

// NewEntry builds a transcript entry with a fresh id and timestamp.
func NewEntry(sender domain.Sender, text string, toolsUsed []string) domain.Entry {
	return domain.Entry{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		ToolsUsed: toolsUsed,
		At:        time.Now().UTC(),
	}
}

// MemoryTranscript keeps the conversation in memory only. It is the
// default store; nothing survives a restart.
type MemoryTranscript struct {
	mu      sync.Mutex
	entries []domain.Entry
}

// NewMemoryTranscript creates an empty in-memory transcript.
func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{}
}

// Append implements Transcript.
func (t *MemoryTranscript) Append(entry domain.Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	return nil
}

// Entries implements Transcript.
func (t *MemoryTranscript) Entries() ([]domain.Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Entry, len(t.entries))
	copy(out, t.entries)
	return out, nil
}
