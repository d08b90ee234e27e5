package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is the data recorded when a run ends.
type Run struct {
	GameID     string
	PlayerName string
	Score      int
	BestCombo  int
	Level      int
}

// ScoreEntry is a logged run.
type ScoreEntry struct {
	ID         int64
	GameID     string
	PlayerName string
	Score      int
	BestCombo  int
	Level      int
	CreatedAt  time.Time
}

// GameStats aggregates the run log of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestCombo  int
	LastPlayed time.Time
}

const (
	entryColumns = `id, game_id, player_name, score, best_combo, level, created_at`
	statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		COALESCE(SUM(score), 0), COALESCE(MAX(best_combo), 0), MAX(created_at)`
	sqliteTime = "2006-01-02 15:04:05"
)

// SaveRun appends a finished run to the log and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Level < 1 {
		run.Level = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO scores (game_id, player_name, score, best_combo, level) VALUES (?, ?, ?, ?, ?)`,
		run.GameID, run.PlayerName, run.Score, run.BestCombo, run.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best runs of a variant, highest first and earlier
// runs first on ties. A limit of zero or less returns every run.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT `+entryColumns+` FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var created any
		if err := rows.Scan(&e.ID, &e.GameID, &e.PlayerName, &e.Score, &e.BestCombo, &e.Level, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best logged score of a variant, 0 when none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes the run log of a variant and returns how many runs
// were removed.
func (s *Store) ClearScores(gameID string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return res.RowsAffected()
}

// GetGameStats aggregates the run log of a variant. A variant without
// runs yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	var last any
	err := s.db.QueryRow(`SELECT `+statsColumns+` FROM scores WHERE game_id = ?`, gameID).
		Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &st.BestCombo, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// GetAllGamesStats aggregates the run log of every variant played so far,
// keyed by game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT game_id, ` + statsColumns + ` FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		st := &GameStats{}
		var last any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &st.BestCombo, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(last)
		stats[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime accepts the time.Time or text forms the driver returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
