package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/repcoin/repcoin/internal/models"
)

// InsertRep inserts a rep row. Returns true if inserted, false if the
// client-generated ID was already recorded (journal re-flush).
func (db *DB) InsertRep(ctx context.Context, rep models.Rep) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO reps (id, exercise_type, coins_earned, source, created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT DO NOTHING`,
		rep.ID, rep.ExerciseType, rep.CoinsEarned, rep.Source, rep.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting rep: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryRecentReps retrieves the most recent reps, newest first.
func (db *DB) QueryRecentReps(ctx context.Context, limit int) ([]models.Rep, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise_type, coins_earned, source, created_at
		 FROM reps
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reps: %w", err)
	}
	defer rows.Close()

	var result []models.Rep
	for rows.Next() {
		var r models.Rep
		if err := rows.Scan(&r.ID, &r.ExerciseType, &r.CoinsEarned, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rep: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// RepStatsPoint is one time bucket of per-exercise rep counts.
type RepStatsPoint struct {
	Bucket  time.Time `json:"bucket"`
	Pushups int       `json:"pushups"`
	Situps  int       `json:"situps"`
	Coins   int       `json:"coins"`
}

// GetRepStats returns time-bucketed rep counts and coin totals. The bucket
// unit is a date_trunc field ("hour", "day", or "week").
func (db *DB) GetRepStats(ctx context.Context, start, end time.Time, bucket string) ([]RepStatsPoint, error) {
	switch bucket {
	case "hour", "day", "week":
	default:
		return nil, fmt.Errorf("unsupported bucket %q", bucket)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, created_at) AS bucket,
		        COUNT(*) FILTER (WHERE exercise_type = 'pushup'),
		        COUNT(*) FILTER (WHERE exercise_type = 'situp'),
		        COALESCE(SUM(coins_earned), 0)
		 FROM reps
		 WHERE created_at >= $2 AND created_at < $3
		 GROUP BY bucket
		 ORDER BY bucket`,
		bucket, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying rep stats: %w", err)
	}
	defer rows.Close()

	var result []RepStatsPoint
	for rows.Next() {
		var p RepStatsPoint
		if err := rows.Scan(&p.Bucket, &p.Pushups, &p.Situps, &p.Coins); err != nil {
			return nil, fmt.Errorf("scanning rep stats: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
