package models

// Wallet aggregates all recorded reps and sessions into the totals the
// app's wallet screen displays.
type Wallet struct {
	TotalCoins    int `json:"total_coins"`
	TotalPushups  int `json:"total_pushups"`
	TotalSitups   int `json:"total_situps"`
	SessionsCount int `json:"sessions_count"`
}
