package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dk472310/personal-dashboard/internal/news"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the news cache in two tables: the current article set
// and a single-row refresh timestamp. Both are only ever replaced wholesale,
// inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) if needed and
// ensures the schema exists. A single write connection avoids SQLITE_BUSY
// under concurrent refresh triggers.
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening news db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id           INTEGER PRIMARY KEY,
			title        TEXT NOT NULL,
			date         TEXT NOT NULL,
			text_content TEXT NOT NULL,
			link         TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS last_update (
			id        INTEGER PRIMARY KEY,
			timestamp TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceAll swaps the cached article set and the refresh timestamp in a
// single transaction: either the new set with a new timestamp lands, or
// nothing changes.
func (s *SQLiteStore) ReplaceAll(articles []news.Article) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM articles"); err != nil {
		return fmt.Errorf("clearing articles: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO articles (title, date, text_content, link)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.Exec(a.Title, a.Date, a.TextContent, a.Link); err != nil {
			return fmt.Errorf("inserting article %q: %w", a.Title, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM last_update"); err != nil {
		return fmt.Errorf("clearing last update: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO last_update (timestamp) VALUES (?)",
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("recording last update: %w", err)
	}

	return tx.Commit()
}

// ReadAll returns the current cached article set.
func (s *SQLiteStore) ReadAll() ([]news.Article, error) {
	rows, err := s.db.Query("SELECT title, date, text_content, link FROM articles")
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var a news.Article
		if err := rows.Scan(&a.Title, &a.Date, &a.TextContent, &a.Link); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ReadTimestamp returns the instant of the last successful refresh, or
// news.ErrNoTimestamp if none was ever recorded.
func (s *SQLiteStore) ReadTimestamp() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT timestamp FROM last_update").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, news.ErrNoTimestamp
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading last update: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last update %q: %w", value, err)
	}
	return ts, nil
}
