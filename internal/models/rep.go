package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/repcoin/repcoin/internal/engine"
)

// CoinsPerRep is the reward credited for one accepted repetition.
const CoinsPerRep = 1

// Rep is one accepted repetition, ready for insertion into the reps table.
// The ID is client-generated so offline journals can re-send without
// creating duplicates.
type Rep struct {
	ID           uuid.UUID `json:"id"`
	ExerciseType string    `json:"exercise_type"` // canonical: pushup | situp
	CoinsEarned  int       `json:"coins_earned"`
	Source       string    `json:"source"` // accelerometer | pose | manual
	CreatedAt    time.Time `json:"created_at"`
}

// NewRep builds a Rep for an engine rep-completion event.
func NewRep(kind engine.Kind, source engine.SourceKind, at time.Time) Rep {
	return Rep{
		ID:           uuid.New(),
		ExerciseType: kind.String(),
		CoinsEarned:  CoinsPerRep,
		Source:       source.String(),
		CreatedAt:    at,
	}
}
