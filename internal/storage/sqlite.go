// Package storage keeps the history of finished matches in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons stored with a match.
const (
	EndCompleted = "completed"
	EndAbandoned = "abandoned"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished or abandoned match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Variant   string
	Columns   int
	Starting  string
	Winner    string // empty when abandoned
	EndReason string
	Moves     int
	Duration  int // seconds
	CreatedAt time.Time
}

// MoveRecord is one applied move of a match.
type MoveRecord struct {
	MatchID  string
	Seq      int
	Color    string
	Piece    int
	Face     int
	From     int
	To       int
	Captured int // piece id, -1 when nothing was captured
}

// HistoryStats aggregates every stored match.
type HistoryStats struct {
	Matches    int
	Completed  int
	RedWins    int
	BlueWins   int
	AvgMoves   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL DEFAULT '',
			columns INTEGER NOT NULL,
			starting TEXT NOT NULL,
			winner TEXT,
			end_reason TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS moves (
			match_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			color TEXT NOT NULL,
			piece INTEGER NOT NULL,
			face INTEGER NOT NULL,
			from_cell INTEGER NOT NULL,
			to_cell INTEGER NOT NULL,
			captured INTEGER,
			PRIMARY KEY (match_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a match and its moves in one transaction.
// Returns the ID of the inserted match row.
func (s *Store) SaveMatch(m MatchRecord, moves []MoveRecord) (id int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var winner sql.NullString
	if m.Winner != "" {
		winner = sql.NullString{String: m.Winner, Valid: true}
	}

	res, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, variant, columns, starting, winner, end_reason, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Variant, m.Columns, m.Starting, winner, m.EndReason, m.Moves, m.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	for _, mv := range moves {
		var captured sql.NullInt64
		if mv.Captured >= 0 {
			captured = sql.NullInt64{Int64: int64(mv.Captured), Valid: true}
		}
		if _, err = tx.Exec(
			`INSERT INTO moves (match_id, seq, color, piece, face, from_cell, to_cell, captured)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.MatchID, mv.Seq, mv.Color, mv.Piece, mv.Face, mv.From, mv.To, captured,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save move %d: %w", mv.Seq, err)
		}
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, variant, columns, starting, winner, end_reason, moves, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var m MatchRecord
	var winner sql.NullString
	var createdAt any
	if err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.Variant,
		&m.Columns,
		&m.Starting,
		&winner,
		&m.EndReason,
		&m.Moves,
		&m.Duration,
		&createdAt,
	); err != nil {
		return m, err
	}
	if winner.Valid {
		m.Winner = winner.String
	}
	m.CreatedAt = parseTimestamp(createdAt)
	return m, nil
}

// parseTimestamp handles both time.Time and string DATETIME values.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID. Returns nil when unknown.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Moves retrieves the moves of a match in play order.
func (s *Store) Moves(matchID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(
		`SELECT match_id, seq, color, piece, face, from_cell, to_cell, captured
		 FROM moves
		 WHERE match_id = ?
		 ORDER BY seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var mv MoveRecord
		var captured sql.NullInt64
		if err := rows.Scan(&mv.MatchID, &mv.Seq, &mv.Color, &mv.Piece, &mv.Face, &mv.From, &mv.To, &captured); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		mv.Captured = -1
		if captured.Valid {
			mv.Captured = int(captured.Int64)
		}
		moves = append(moves, mv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return moves, nil
}

// Stats aggregates the stored history.
func (s *Store) Stats() (*HistoryStats, error) {
	stats := &HistoryStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'red' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'blue' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM matches`,
		EndCompleted,
	).Scan(&stats.Matches, &stats.Completed, &stats.RedWins, &stats.BlueWins, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get history stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearHistory deletes every stored match and move.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM moves; DELETE FROM matches;"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}
