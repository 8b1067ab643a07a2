package db

// SchemaVersion is bumped whenever a migration is appended to migrations
const SchemaVersion = 1

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY
);
`

const selectSchemaVersion = `
SELECT COALESCE(MAX(version), 0) FROM schema_migrations
`

const insertSchemaVersion = `
INSERT INTO schema_migrations (version) VALUES (?)
`

// Key-value slots (favorites and other small local settings)
const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// migrations are applied in order; index i brings the schema to version i+1
var migrations = []string{
	createKVTable,
}

const selectValue = `
SELECT value FROM kv WHERE key = ?
`

const upsertValue = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

const deleteValue = `
DELETE FROM kv WHERE key = ?
`

const selectUpdatedAt = `
SELECT updated_at FROM kv WHERE key = ?
`
