// Package index keeps a small SQLite registry of ingested papers in the
// cache directory, so past ingests can be listed without re-reading PDFs.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one ingested paper.
type Record struct {
	Source     string    `json:"source"`
	SourceType string    `json:"source_type"`
	PDFPath    string    `json:"pdf_path"`
	Title      string    `json:"title"`
	Pages      int       `json:"pages"`
	Sections   int       `json:"sections"`
	IngestedAt time.Time `json:"ingested_at"`
}

// Index wraps the papers table.
type Index struct {
	db *sql.DB
}

// Open opens or creates the index database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		source       TEXT NOT NULL,
		source_type  TEXT NOT NULL,
		pdf_path     TEXT NOT NULL,
		title        TEXT NOT NULL DEFAULT '',
		pages        INTEGER NOT NULL DEFAULT 0,
		sections     INTEGER NOT NULL DEFAULT 0,
		ingested_at  TEXT NOT NULL,
		PRIMARY KEY (source_type, source)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Record upserts a paper keyed by (source_type, source), so re-ingesting the
// same source replaces its row.
func (i *Index) Record(ctx context.Context, rec Record) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO papers
		(source, source_type, pdf_path, title, pages, sections, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.Source,
		rec.SourceType,
		rec.PDFPath,
		rec.Title,
		rec.Pages,
		rec.Sections,
		rec.IngestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record paper: %w", err)
	}
	return nil
}

// List returns the most recently ingested papers, newest first.
func (i *Index) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := i.db.QueryContext(ctx, `
		SELECT source, source_type, pdf_path, title, pages, sections, ingested_at
		FROM papers
		ORDER BY ingested_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var ingested string
		if err := rows.Scan(&rec.Source, &rec.SourceType, &rec.PDFPath, &rec.Title, &rec.Pages, &rec.Sections, &ingested); err != nil {
			return nil, err
		}
		rec.IngestedAt, _ = time.Parse(time.RFC3339, ingested)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database.
func (i *Index) Close() error {
	return i.db.Close()
}
