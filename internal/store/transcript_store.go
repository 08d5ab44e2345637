package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adrianariton/cellbridge/internal/domain"
)

// SQLiteTranscript stores conversation entries durably. It satisfies the
// bridge's Transcript interface; entries survive restarts.
type SQLiteTranscript struct {
	db *DB
}

// NewSQLiteTranscript creates a transcript over an open database.
func NewSQLiteTranscript(db *DB) *SQLiteTranscript {
	return &SQLiteTranscript{db: db}
}

// Append inserts one entry. Insertion order is the transcript order.
func (t *SQLiteTranscript) Append(entry domain.Entry) error {
	var toolsUsed sql.NullString
	if len(entry.ToolsUsed) > 0 {
		raw, err := json.Marshal(entry.ToolsUsed)
		if err != nil {
			return fmt.Errorf("encoding tools used: %w", err)
		}
		toolsUsed = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := t.db.sql.Exec(`
		INSERT INTO transcript_entries (id, sender, text, tools_used, at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Sender), entry.Text, toolsUsed, entry.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting transcript entry: %w", err)
	}
	return nil
}

// Entries returns the full transcript in insertion order.
func (t *SQLiteTranscript) Entries() ([]domain.Entry, error) {
	rows, err := t.db.sql.Query(`
		SELECT id, sender, text, tools_used, at
		FROM transcript_entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying transcript: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			entry     domain.Entry
			sender    string
			toolsUsed sql.NullString
			at        string
		)
		if err := rows.Scan(&entry.ID, &sender, &entry.Text, &toolsUsed, &at); err != nil {
			return nil, fmt.Errorf("scanning transcript entry: %w", err)
		}
		entry.Sender = domain.Sender(sender)
		if toolsUsed.Valid {
			if err := json.Unmarshal([]byte(toolsUsed.String), &entry.ToolsUsed); err != nil {
				return nil, fmt.Errorf("decoding tools used: %w", err)
			}
		}
		if entry.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parsing entry timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
