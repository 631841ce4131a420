package store

// SQLite schema DDL constants

const schemaRecords = `
CREATE TABLE IF NOT EXISTS records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    address TEXT NOT NULL
)`

// Connection pragmas applied on open
const (
	pragmaJournalMode = `PRAGMA journal_mode=WAL`
	pragmaBusyTimeout = `PRAGMA busy_timeout=5000`
)

func allPragmas() []string {
	return []string{
		pragmaJournalMode,
		pragmaBusyTimeout,
	}
}

func allSchemaStatements() []string {
	return []string{
		schemaRecords,
	}
}
