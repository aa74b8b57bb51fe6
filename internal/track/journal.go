package track

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/repcoin/repcoin/internal/models"
)

// Journal buffers reps recorded while the server is unreachable. Entries
// keep their original IDs and timestamps, and the server's idempotent
// insert makes re-flushing after a partial failure safe.
type Journal struct {
	db *sql.DB
}

// OpenJournal opens (or creates) the SQLite journal at dir/journal.db.
func OpenJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pending_reps (
		id            TEXT PRIMARY KEY,
		exercise_type TEXT NOT NULL,
		coins_earned  INTEGER NOT NULL,
		source        TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Append records a rep for later delivery.
func (j *Journal) Append(rep models.Rep) error {
	_, err := j.db.Exec(
		`INSERT OR REPLACE INTO pending_reps (id, exercise_type, coins_earned, source, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rep.ID.String(), rep.ExerciseType, rep.CoinsEarned, rep.Source,
		rep.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("journaling rep: %w", err)
	}
	return nil
}

// Pending returns all journaled reps, oldest first.
func (j *Journal) Pending() ([]models.Rep, error) {
	rows, err := j.db.Query(
		`SELECT id, exercise_type, coins_earned, source, created_at
		 FROM pending_reps ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var result []models.Rep
	for rows.Next() {
		var r models.Rep
		var id, createdAt string
		if err := rows.Scan(&id, &r.ExerciseType, &r.CoinsEarned, &r.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing journal id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing journal timestamp %q: %w", createdAt, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Remove deletes a delivered rep from the journal.
func (j *Journal) Remove(id uuid.UUID) error {
	_, err := j.db.Exec(`DELETE FROM pending_reps WHERE id = ?`, id.String())
	return err
}

// Flush posts every journaled rep to the server, removing each on success.
// It stops at the first delivery failure and reports how many were sent.
func (j *Journal) Flush(ctx context.Context, client *Client) (int, error) {
	pending, err := j.Pending()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, rep := range pending {
		if err := client.PostRep(ctx, rep); err != nil {
			return sent, fmt.Errorf("flushing rep %s: %w", rep.ID, err)
		}
		if err := j.Remove(rep.ID); err != nil {
			return sent, fmt.Errorf("removing flushed rep %s: %w", rep.ID, err)
		}
		sent++
	}
	return sent, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
