package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create transcript entries",
		SQL: `
			CREATE TABLE transcript_entries (
				seq        INTEGER PRIMARY KEY AUTOINCREMENT,
				id         TEXT NOT NULL UNIQUE,
				sender     TEXT NOT NULL,
				text       TEXT NOT NULL,
				tools_used TEXT,
				at         TEXT NOT NULL
			);

			CREATE INDEX idx_transcript_sender ON transcript_entries (sender);
		`,
	},
}
