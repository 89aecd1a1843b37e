package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the aquarium and measurement tables if they are
// absent. It is safe to run on every startup; any failure means the schema
// is unusable and the caller must abort.
func EnsureSchema(db *sqlx.DB, dialect Dialect) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == DialectPostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	statements := []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS aquariums (
  id %s,
  name TEXT NOT NULL UNIQUE,
  created_at TEXT NOT NULL,
  image_path TEXT NULL
)`, idColumn),
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS measurements (
  id %s,
  aquarium_id BIGINT NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
  date TEXT NOT NULL,
  nitrate DOUBLE PRECISION NULL,
  phosphate DOUBLE PRECISION NULL,
  kh DOUBLE PRECISION NULL,
  magnesium BIGINT NULL,
  calcium BIGINT NULL,
  created_at TEXT NOT NULL
)`, idColumn),
		`CREATE INDEX IF NOT EXISTS idx_measurements_aquarium_date ON measurements(aquarium_id, date)`,
	}
	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
