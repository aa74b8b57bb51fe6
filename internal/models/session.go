package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is the summary a client records when a workout ends.
type WorkoutSession struct {
	ID         uuid.UUID `json:"id"`
	Pushups    int       `json:"pushups"`
	Situps     int       `json:"situps"`
	TotalCoins int       `json:"total_coins"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusCheck is a client liveness ping.
type StatusCheck struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	CreatedAt  time.Time `json:"created_at"`
}
