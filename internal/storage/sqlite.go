// Package storage provides SQLite-based persistence for level progress.
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

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord describes one play session: a local run or an SSH
// connection.
type SessionRecord struct {
	ID        string // UUID
	Player    string
	Source    string // "local" or "ssh"
	StartedAt time.Time
}

// Completion is a single solved (or skipped) level.
type Completion struct {
	ID        int64
	SessionID string
	Player    string
	LevelID   string
	Moves     int
	Falls     int
	Undos     int
	Duration  time.Duration
	Skipped   bool
	CreatedAt time.Time
}

// LevelProgress aggregates a player's completions of one level.
// Skipped completions count as attempts but never as a best result.
type LevelProgress struct {
	LevelID    string
	Solved     bool
	BestMoves  int // 0 when not solved
	Completed  int
	TotalFalls int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			source TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL,
			level_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			falls INTEGER NOT NULL DEFAULT 0,
			undos INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_id, moves);
		CREATE INDEX IF NOT EXISTS idx_completions_player ON completions(player, level_id);
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

// StartSession records a new play session.
func (s *Store) StartSession(rec SessionRecord) error {
	if rec.ID == "" {
		return errors.New("storage: session id is required")
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, player, source) VALUES (?, ?, ?)",
		rec.ID, rec.Player, rec.Source,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot start session: %w", err)
	}
	return nil
}

// Session retrieves a session by id. Returns nil if it does not exist.
func (s *Store) Session(id string) (*SessionRecord, error) {
	var rec SessionRecord
	var startedAt any

	err := s.db.QueryRow(
		"SELECT id, player, source, started_at FROM sessions WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Player, &rec.Source, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	rec.StartedAt = parseTime(startedAt)
	return &rec, nil
}

// SaveCompletion records a finished level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO completions
		 (session_id, player, level_id, moves, falls, undos, duration_ms, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.SessionID, c.Player, c.LevelID, c.Moves, c.Falls, c.Undos,
		c.Duration.Milliseconds(), c.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const completionColumns = `id, session_id, player, level_id, moves, falls, undos, duration_ms, skipped, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompletion(row scanner) (Completion, error) {
	var c Completion
	var durationMs int64
	var createdAt any
	err := row.Scan(&c.ID, &c.SessionID, &c.Player, &c.LevelID, &c.Moves,
		&c.Falls, &c.Undos, &durationMs, &c.Skipped, &createdAt)
	if err != nil {
		return Completion{}, err
	}
	c.Duration = time.Duration(durationMs) * time.Millisecond
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

// BestResult returns the solved completion of a level with the fewest
// moves, across all players. Returns nil if the level was never solved.
func (s *Store) BestResult(levelID string) (*Completion, error) {
	row := s.db.QueryRow(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE level_id = ? AND skipped = 0
		 ORDER BY moves ASC, created_at ASC, id ASC
		 LIMIT 1`,
		levelID,
	)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return &c, nil
}

// Completions retrieves the best solved completions of a level, fewest
// moves first.
func (s *Store) Completions(levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE level_id = ? AND skipped = 0
		 ORDER BY moves ASC, created_at ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Progress aggregates completions per level for a player, ordered by level
// id. An empty player aggregates everyone.
func (s *Store) Progress(player string) ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COALESCE(MIN(CASE WHEN skipped = 0 THEN moves END), 0),
		        SUM(CASE WHEN skipped = 0 THEN 1 ELSE 0 END),
		        COUNT(*),
		        COALESCE(SUM(falls), 0),
		        MAX(created_at)
		 FROM completions
		 WHERE ? = '' OR player = ?
		 GROUP BY level_id
		 ORDER BY level_id`,
		player, player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var result []LevelProgress
	for rows.Next() {
		var p LevelProgress
		var solved int
		var lastPlayed any
		if err := rows.Scan(&p.LevelID, &p.BestMoves, &solved, &p.Completed, &p.TotalFalls, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		p.Solved = solved > 0
		p.LastPlayed = parseTime(lastPlayed)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// SolvedLevels returns the set of level ids a player has solved without
// skipping.
func (s *Store) SolvedLevels(player string) (map[string]bool, error) {
	progress, err := s.Progress(player)
	if err != nil {
		return nil, err
	}
	solved := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Solved {
			solved[p.LevelID] = true
		}
	}
	return solved, nil
}

// ClearProgress deletes all completions of a player.
func (s *Store) ClearProgress(player string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
