package incident

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore is the relational backend. The id and both timestamps
// are assigned by the database so ordering matches insertion order even
// across replicas of this service.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS incidents (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  urgency TEXT NOT NULL,
  ai_summary TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  requires_supervisor BOOLEAN,
  server_timestamp TIMESTAMP WITH TIME ZONE
);
CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents (created_at DESC);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Save(ctx context.Context, w Write) (Incident, error) {
	if s == nil || s.db == nil {
		return Incident{}, fmt.Errorf("postgres store is nil")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return Incident{}, fmt.Errorf("ensure schema: %w", err)
	}
	var (
		requiresSupervisor sql.NullBool
		serverTimestamp    string
	)
	if w.RequiresSupervisor {
		requiresSupervisor = sql.NullBool{Bool: true, Valid: true}
		serverTimestamp = "NOW()"
	} else {
		serverTimestamp = "NULL"
	}
	row := s.db.QueryRowContext(ctx, `
INSERT INTO incidents (title, description, urgency, ai_summary, requires_supervisor, server_timestamp)
VALUES ($1, $2, $3, $4, $5, `+serverTimestamp+`)
RETURNING id, title, description, urgency, ai_summary, created_at, requires_supervisor, server_timestamp`,
		w.Title, w.Description, w.Urgency, w.AISummary, requiresSupervisor)
	inc, err := scanIncident(row)
	if err != nil {
		return Incident{}, fmt.Errorf("save incident: %w", err)
	}
	return inc, nil
}

func (s *PostgresStore) FetchAll(ctx context.Context) ([]Incident, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("postgres store is nil")
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, description, urgency, ai_summary, created_at, requires_supervisor, server_timestamp
FROM incidents
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("fetch incidents: %w", err)
	}
	defer rows.Close()

	out := make([]Incident, 0, 16)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		out = append(out, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch incidents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (Incident, error) {
	var (
		inc                Incident
		requiresSupervisor sql.NullBool
		serverTimestamp    sql.NullTime
	)
	err := row.Scan(
		&inc.ID,
		&inc.Title,
		&inc.Description,
		&inc.Urgency,
		&inc.AISummary,
		&inc.CreatedAt,
		&requiresSupervisor,
		&serverTimestamp,
	)
	if err != nil {
		return Incident{}, err
	}
	if requiresSupervisor.Valid && requiresSupervisor.Bool {
		v := true
		inc.RequiresSupervisor = &v
	}
	if serverTimestamp.Valid {
		t := serverTimestamp.Time
		inc.ServerTimestamp = &t
	}
	return inc, nil
}
