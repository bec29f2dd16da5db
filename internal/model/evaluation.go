package model

import "time"

// Evaluation is the outcome of one check-and-notify cycle. It is kept in
// memory for the status endpoint only; nothing is persisted.
type Evaluation struct {
	RSI       float64   `json:"rsi"`
	Threshold float64   `json:"threshold"`
	Triggered bool      `json:"triggered"`
	Notified  bool      `json:"notified"`
	CheckedAt time.Time `json:"checked_at"`
}
