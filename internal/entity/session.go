package entity

import "time"

// Session owns one game: its history and how the move list is ordered.
type Session struct {
	ID                string      `json:"id"`
	History           GameHistory `json:"history"`
	Reversed          bool        `json:"reversed"`
	RecordCoordinates bool        `json:"record_coordinates"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func NewSession(id string, recordCoordinates bool, now time.Time) *Session {
	return &Session{
		ID:                id,
		History:           NewGameHistory(),
		Reversed:          false,
		RecordCoordinates: recordCoordinates,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ToggleOrder flips the move list between chronological and reverse order.
func (that *Session) ToggleOrder() {
	that.Reversed = !that.Reversed
}

func (that *Session) Touch(now time.Time) {
	that.UpdatedAt = now
}
