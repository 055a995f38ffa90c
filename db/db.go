// Package db records the normalized input-event stream to SQLite, so a
// capture session can be replayed offline against any layout.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/justDeeevin/NuhxBoard/input"

	_ "github.com/mattn/go-sqlite3"
)

// Recorded is one stored event with its capture timestamp.
type Recorded struct {
	Event input.Event
	At    time.Time
}

type Storage interface {
	Store(event *input.Event, at time.Time) error
	// All returns every recorded event in capture order.
	All() ([]Recorded, error)
	Count() (int, error)
	Close()
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db}
}

func InitDbStorage(db *sql.DB) error {
	sqlStmt := `
	create table if not exists events(
	    kind int, code int, pressed bool, dx int, dy int, x real, y real,
	    ts datetime);`

	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("could not create events table: %w", err)
	}

	sqlStmt = `create index if not exists events_tsix on events (ts ASC);`
	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("could not create events index: %w", err)
	}

	return nil
}

func ConnectDB(path string) (Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", path, err)
	}

	if err := InitDbStorage(db); err != nil {
		return nil, err
	}

	return &SQLiteStorage{db}, nil
}

func (s *SQLiteStorage) Store(event *input.Event, at time.Time) error {
	_, err := s.db.Exec(
		`insert into events(kind, code, pressed, dx, dy, x, y, ts)
		 values(?, ?, ?, ?, ?, ?, ?, ?)`,
		int(event.Kind), event.Code, event.Pressed,
		event.DX, event.DY, event.X, event.Y,
		at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("could not store event: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) All() ([]Recorded, error) {
	rows, err := s.db.Query(
		`select kind, code, pressed, dx, dy, x, y, ts
		 from events
		 order by ts, rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not read events: %w", err)
	}

	defer rows.Close()

	result := make([]Recorded, 0)

	for rows.Next() {
		var (
			rec  Recorded
			kind int
			ts   string
		)

		err = rows.Scan(&kind, &rec.Event.Code, &rec.Event.Pressed,
			&rec.Event.DX, &rec.Event.DY, &rec.Event.X, &rec.Event.Y, &ts)
		if err != nil {
			return nil, fmt.Errorf("could not scan event row: %w", err)
		}

		rec.Event.Kind = input.Kind(kind)

		rec.At, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("could not parse event timestamp: %w", err)
		}

		result = append(result, rec)
	}

	return result, rows.Err()
}

func (s *SQLiteStorage) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`select count(*) from events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("could not count events: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) Close() {
	s.db.Close()
}
