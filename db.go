package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// migration queries
	createEntriesTableSQL = `
  CREATE TABLE IF NOT EXISTS entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  time_of_day TEXT NOT NULL,
  mood INTEGER NOT NULL,
  sleep_hours REAL NOT NULL DEFAULT 0,
  note TEXT NOT NULL DEFAULT '',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	createEntriesDateIndexSQL = `CREATE INDEX IF NOT EXISTS idx_entries_date ON entries (date)`

	// entry queries
	createEntrySQL = `INSERT INTO entries (date, time_of_day, mood, sleep_hours, note) VALUES (?, ?, ?, ?, ?)`
	getEntriesSQL  = `SELECT date, time_of_day, mood, sleep_hours, note FROM entries ORDER BY id`
)

// SQLiteStore keeps entries in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// ensure directory exists
	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// verify connection with database
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}

	// run migrations
	if err := store.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runs migrations on initial start
func (s *SQLiteStore) runMigrations() error {
	statements := []string{
		createEntriesTableSQL,
		createEntriesDateIndexSQL,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Records returns every row in insertion order.
func (s *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, getEntriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r     Record
			mood  int
			sleep float64
		)
		if err := rows.Scan(&r.Date, &r.TimeOfDay, &mood, &sleep, &r.Note); err != nil {
			return nil, err
		}
		r.Mood = strconv.Itoa(mood)
		r.SleepHours = strconv.FormatFloat(sleep, 'f', -1, 64)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	r := e.Record()
	_, err := s.db.ExecContext(ctx, createEntrySQL, r.Date, r.TimeOfDay, e.Mood, e.SleepHours, e.Note)
	if err != nil {
		return fmt.Errorf("error while inserting entry: %w", err)
	}
	return nil
}
