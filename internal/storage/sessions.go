package storage

import (
	"context"
	"fmt"

	"github.com/repcoin/repcoin/internal/models"
)

// InsertSession inserts a workout session summary. Returns true if
// inserted, false if the ID was already recorded.
func (db *DB) InsertSession(ctx context.Context, s models.WorkoutSession) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, pushups, situps, total_coins, created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT DO NOTHING`,
		s.ID, s.Pushups, s.Situps, s.TotalCoins, s.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryRecentSessions retrieves the most recent workout sessions, newest first.
func (db *DB) QueryRecentSessions(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, pushups, situps, total_coins, created_at
		 FROM workout_sessions
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var s models.WorkoutSession
		if err := rows.Scan(&s.ID, &s.Pushups, &s.Situps, &s.TotalCoins, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// InsertStatusCheck records a client liveness ping.
func (db *DB) InsertStatusCheck(ctx context.Context, c models.StatusCheck) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO status_checks (id, client_name, created_at)
		 VALUES ($1,$2,$3)
		 ON CONFLICT DO NOTHING`,
		c.ID, c.ClientName, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting status check: %w", err)
	}
	return nil
}

// QueryStatusChecks retrieves recent status checks, newest first.
func (db *DB) QueryStatusChecks(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, client_name, created_at
		 FROM status_checks
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying status checks: %w", err)
	}
	defer rows.Close()

	var result []models.StatusCheck
	for rows.Next() {
		var c models.StatusCheck
		if err := rows.Scan(&c.ID, &c.ClientName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning status check: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
