package database

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		uid           TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		permissions   JSONB NOT NULL DEFAULT '[]'
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id               BIGSERIAL PRIMARY KEY,
		uid              TEXT NOT NULL UNIQUE,
		card_number      TEXT NOT NULL,
		card_holder_name TEXT NOT NULL,
		expiry_date      TEXT NOT NULL,
		amount           DOUBLE PRECISION NOT NULL,
		currency         TEXT NOT NULL,
		cvv              TEXT NOT NULL,
		payment_date     TIMESTAMPTZ NOT NULL,
		state            TEXT NOT NULL
	);`,
}

// EnsureSchema creates the gateway tables when they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
