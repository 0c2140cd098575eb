// Package storage provides SQLite-based persistence for accounts, scores
// and the leaderboard.
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

// ErrUserExists is returned by CreateUser when the username is taken.
var ErrUserExists = errors.New("storage: user already exists")

// timeLayout is how timestamps are written to the database (always UTC).
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// User is a registered account. PasswordHash is never the plain password.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Phone        string
	CreatedAt    time.Time
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	Username  string
	Score     int
	CreatedAt time.Time
}

// LeaderboardEntry is one player's best score.
type LeaderboardEntry struct {
	Rank      int
	Username  string
	Score     int
	ReachedAt time.Time // When the best score was first reached
}

// DisplayDate formats ReachedAt as DD/MM/YYYY, or "" when unknown.
func (e LeaderboardEntry) DisplayDate() string {
	if e.ReachedAt.IsZero() {
		return ""
	}
	return e.ReachedAt.Format("02/01/2006")
}

// PlayerStats contains aggregated statistics for a player.
type PlayerStats struct {
	Username   string
	GamesCount int
	BestScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every pooled connection to :memory: would be a separate database.
	// A single connection also serialises writers on a file database.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_username ON scores(username, created_at DESC);

		CREATE TABLE IF NOT EXISTS top_scores (
			username TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			reached_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_top_scores_score ON top_scores(score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
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

// CreateUser inserts a new account and returns its ID.
// Returns ErrUserExists if the username is already registered.
func (s *Store) CreateUser(u User) (int64, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", u.Username).Scan(&exists); err != nil {
		return 0, fmt.Errorf("storage: cannot check username: %w", err)
	}
	if exists > 0 {
		return 0, ErrUserExists
	}

	result, err := tx.Exec(
		"INSERT INTO users (username, password_hash, full_name, phone, created_at) VALUES (?, ?, ?, ?, ?)",
		u.Username, u.PasswordHash, u.FullName, u.Phone, formatTime(u.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit user: %w", err)
	}
	return id, nil
}

// UserByName looks up an account. Returns nil, nil if it does not exist.
func (s *Store) UserByName(username string) (*User, error) {
	var u User
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, username, password_hash, full_name, phone, created_at
		 FROM users
		 WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Phone, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// SubmitScore appends a finished game to the history and raises the
// player's best score if this one is higher. A lower or equal score never
// overwrites the recorded best or the date it was reached.
func (s *Store) SubmitScore(username string, score int, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	ts := formatTime(at)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		"INSERT INTO scores (username, score, created_at) VALUES (?, ?, ?)",
		username, score, ts,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO top_scores (username, score, reached_at) VALUES (?, ?, ?)
		 ON CONFLICT(username) DO UPDATE
		 SET score = excluded.score, reached_at = excluded.reached_at
		 WHERE excluded.score > top_scores.score`,
		username, score, ts,
	); err != nil {
		return fmt.Errorf("storage: cannot update best score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return nil
}

// BestScore returns the player's best score, or 0 if they have none.
func (s *Store) BestScore(username string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM top_scores WHERE username = ?", username).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// Leaderboard returns one best score per player, highest first.
// Ties are ordered by who reached the score first. limit <= 0 means all.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(
		`SELECT username, score, reached_at
		 FROM top_scores
		 ORDER BY score DESC, reached_at ASC, username ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var reachedAt any
		if err := rows.Scan(&e.Username, &e.Score, &reachedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.ReachedAt = parseTime(reachedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// History returns a player's games, most recent first.
// An empty username returns every player's games.
func (s *Store) History(username string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, username, score, created_at
		 FROM scores
		 WHERE ? = '' OR username = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		username, username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics for a player.
func (s *Store) Stats(username string) (*PlayerStats, error) {
	stats := &PlayerStats{Username: username}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE username = ?`,
		username,
	).Scan(&stats.GamesCount, &stats.BestScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearScores deletes every score and best score.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores; DELETE FROM top_scores;"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values from the driver.
// NULL and unparseable values yield the zero time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
