// Package projection mirrors ledger snapshots into a sqlite database and
// a JSON cache file for external dashboards. The projection is derived
// data: rebuilt wholesale after every rescan and never read back into
// the ledger, which stays keyed to the document text alone.
package projection

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sauerdaniel/taskledger/internal/task"
)

// Config holds the projection cache configuration.
type Config struct {
	DBPath   string // path to tasks.db
	CacheDir string // directory for tasks.json
	Logger   *log.Logger
}

// Cache writes ledger snapshots to the projection database.
type Cache struct {
	dbPath   string
	cacheDir string
	logger   *log.Logger
}

// New creates a projection cache.
func New(cfg Config) *Cache {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "[projection] ", log.LstdFlags)
	}
	return &Cache{
		dbPath:   cfg.DBPath,
		cacheDir: cfg.CacheDir,
		logger:   cfg.Logger,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	document   TEXT NOT NULL,
	line       INTEGER NOT NULL,
	title      TEXT NOT NULL,
	completed  INTEGER NOT NULL,
	project    TEXT,
	context    TEXT,
	planned    TEXT,
	due        TEXT,
	review     TEXT,
	tags       TEXT,
	sub_items  INTEGER NOT NULL,
	indexed_at INTEGER NOT NULL,
	PRIMARY KEY (document, line)
)`

// Sync replaces the projected task table with the given snapshot and
// rewrites the JSON cache file. The JSON write failing is non-fatal.
func (c *Cache) Sync(tasks []task.Task) error {
	startTime := time.Now()

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0o755); err != nil {
		return fmt.Errorf("creating projection directory: %w", err)
	}

	db, err := sql.Open("sqlite3", c.dbPath+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("opening projection database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			c.logger.Printf("Warning: error closing projection database: %v", err)
		}
	}()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	indexedAt := time.Now().UnixMilli()
	for i := range tasks {
		t := &tasks[i]
		_, err := tx.Exec(`
			INSERT INTO tasks (
				document, line, title, completed,
				project, context, planned, due, review,
				tags, sub_items, indexed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			t.Document, t.Line, t.Title, t.Completed,
			nullString(t.Project), nullString(t.Context),
			nullDate(t.Planned), nullDate(t.Due), nullDate(t.Review),
			strings.Join(t.Tags, " "), len(t.SubItems), indexedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting task %s:%d: %w", t.Document, t.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tasks: %w", err)
	}

	if err := c.writeTasksJSON(tasks); err != nil {
		c.logger.Printf("Warning: failed to write tasks.json: %v", err)
	}

	c.logger.Printf("Projected %d tasks in %v", len(tasks), time.Since(startTime))
	return nil
}

// writeTasksJSON writes the snapshot cache file with a version stamp.
func (c *Cache) writeTasksJSON(tasks []task.Task) error {
	cacheFile := filepath.Join(c.cacheDir, "tasks.json")

	type jsonTask struct {
		Document  string   `json:"document"`
		Line      int      `json:"line"`
		Title     string   `json:"title"`
		Completed bool     `json:"completed"`
		Project   string   `json:"project,omitempty"`
		Context   string   `json:"context,omitempty"`
		Planned   string   `json:"planned,omitempty"`
		Due       string   `json:"due,omitempty"`
		Review    string   `json:"review,omitempty"`
		Tags      []string `json:"tags,omitempty"`
	}

	out := make([]jsonTask, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		out = append(out, jsonTask{
			Document:  t.Document,
			Line:      t.Line,
			Title:     t.Title,
			Completed: t.Completed,
			Project:   t.Project,
			Context:   t.Context,
			Planned:   dateText(t.Planned),
			Due:       dateText(t.Due),
			Review:    dateText(t.Review),
			Tags:      t.Tags,
		})
	}

	data := map[string]any{
		"_meta": map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   uuid.New().String(),
			"count":     len(out),
		},
		"data": out,
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cacheFile, jsonData, 0o644)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullDate projects a date variant: canonical and opaque values keep
// their text, unset becomes NULL.
func nullDate(d task.DateValue) sql.NullString {
	if !d.IsSet() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Value, Valid: true}
}

func dateText(d task.DateValue) string {
	if !d.IsSet() {
		return ""
	}
	return d.Value
}
