package mcp

import (
	"context"
	"time"

	"github.com/repcoin/repcoin/internal/models"
	"github.com/repcoin/repcoin/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetWallet(ctx context.Context) (*models.Wallet, error)
	QueryRecentReps(ctx context.Context, limit int) ([]models.Rep, error)
	QueryRecentSessions(ctx context.Context, limit int) ([]models.WorkoutSession, error)
	GetRepStats(ctx context.Context, start, end time.Time, bucket string) ([]storage.RepStatsPoint, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
