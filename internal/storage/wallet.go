package storage

import (
	"context"
	"fmt"

	"github.com/repcoin/repcoin/internal/models"
)

// GetWallet aggregates all recorded reps and sessions into wallet totals.
func (db *DB) GetWallet(ctx context.Context) (*models.Wallet, error) {
	w := &models.Wallet{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(coins_earned), 0),
		        COUNT(*) FILTER (WHERE exercise_type = 'pushup'),
		        COUNT(*) FILTER (WHERE exercise_type = 'situp')
		 FROM reps`,
	).Scan(&w.TotalCoins, &w.TotalPushups, &w.TotalSitups)
	if err != nil {
		return nil, fmt.Errorf("aggregating reps: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sessions`,
	).Scan(&w.SessionsCount)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	return w, nil
}
