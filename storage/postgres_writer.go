package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"corona-spread-gif/models"
)

// PostgresWriter mirrors the frame manifest into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS frames (
			date        VARCHAR(10) NOT NULL,
			normalized  BOOLEAN     NOT NULL DEFAULT FALSE,
			html_path   TEXT        NOT NULL DEFAULT '',
			image_path  TEXT        NOT NULL,
			reused      BOOLEAN     NOT NULL DEFAULT FALSE,
			markers     INTEGER     NOT NULL DEFAULT 0,
			rendered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (date, normalized)
		);
	`)
	return err
}

// Write upserts records keyed by (date, normalized).
func (pw *PostgresWriter) Write(records []*models.FrameRecord) error {
	if len(records) == 0 {
		return nil
	}
	query, args := upsertQuery(records)
	if _, err := pw.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: upsert frames: %w", err)
	}
	return nil
}

// upsertQuery keeps the marker count and render time of a row when the new record only reused its image.
func upsertQuery(records []*models.FrameRecord) (string, []interface{}) {
	const cols = 7
	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*cols)

	for idx, r := range records {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			r.Date, r.Normalized, r.HTMLPath, r.ImagePath, r.Reused, r.Markers, r.RenderedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO frames (date, normalized, html_path, image_path, reused, markers, rendered_at)
		VALUES %s
		ON CONFLICT (date, normalized) DO UPDATE SET
			html_path = EXCLUDED.html_path,
			image_path = EXCLUDED.image_path,
			reused = EXCLUDED.reused,
			markers = CASE WHEN EXCLUDED.reused THEN frames.markers ELSE EXCLUDED.markers END,
			rendered_at = CASE WHEN EXCLUDED.reused THEN frames.rendered_at ELSE EXCLUDED.rendered_at END
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
