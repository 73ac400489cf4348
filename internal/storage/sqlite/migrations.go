package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// submitted_at is stored as Unix nanoseconds so newest-first ordering is
// stable for submissions within the same second.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    submitted_at INTEGER NOT NULL,

    athlete1_name TEXT NOT NULL DEFAULT '',
    athlete1_phone TEXT NOT NULL DEFAULT '',
    athlete1_email TEXT NOT NULL DEFAULT '',
    athlete1_city TEXT NOT NULL DEFAULT '',
    athlete1_kit TEXT NOT NULL DEFAULT '',

    athlete2_name TEXT NOT NULL DEFAULT '',
    athlete2_phone TEXT NOT NULL DEFAULT '',
    athlete2_email TEXT NOT NULL DEFAULT '',
    athlete2_city TEXT NOT NULL DEFAULT '',
    athlete2_kit TEXT NOT NULL DEFAULT '',

    duo_name TEXT NOT NULL DEFAULT '',
    duo_category TEXT NOT NULL CHECK (duo_category <> ''),
    duo_instagram TEXT NOT NULL DEFAULT '',

    consent INTEGER NOT NULL DEFAULT 0,
    uniforms TEXT NOT NULL DEFAULT '',

    proof_filename TEXT NOT NULL,
    proof_url TEXT NOT NULL,
    proof_fingerprint TEXT NOT NULL UNIQUE,
    proof_mime TEXT NOT NULL,

    status TEXT NOT NULL,

    validation_correct INTEGER,
    validation_score INTEGER NOT NULL CHECK (validation_score BETWEEN 0 AND 100),
    validation_mime TEXT NOT NULL DEFAULT '',
    validation_text_sample TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_submitted_at ON entries(submitted_at);
CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(duo_category);
CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
