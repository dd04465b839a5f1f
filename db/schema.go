package db

// Типы колонок зависят от диалекта: в Postgres id - UUID, в SQLite - TEXT.
// session_id хранится как TEXT: сессией считается любое непустое значение cookie.
// В SQLite amount - TEXT: NUMERIC превратил бы дробные суммы в REAL.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		amount NUMERIC(12, 2) NOT NULL,
		session_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_session_id_index ON transactions (session_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		amount TEXT NOT NULL,
		session_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_session_id_index ON transactions (session_id)`,
}

var schemas = map[string][]string{
	Postgres: postgresSchema,
	PGX:      postgresSchema,
	SQLite:   sqliteSchema,
}
