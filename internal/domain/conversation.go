package domain

import "time"

// Sender identifies who produced a conversation entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Entry is one turn in the conversation transcript. Entries are
// append-only: once recorded they are never mutated.
type Entry struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ToolsUsed []string  `json:"toolsUsed,omitempty"`
	At        time.Time `json:"at"`
}
