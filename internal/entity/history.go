package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// HistoryEntry is a board snapshot for one move. Coordinate is the cell
// filled by the move; it is nil for the initial entry and when the session
// does not record coordinates.
type HistoryEntry struct {
	Board      Board       `json:"board"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// GameHistory is a log of board snapshots with a pointer to the displayed one.
// Playing from an earlier move drops every entry after it.
type GameHistory struct {
	Entries     []HistoryEntry `json:"entries"`
	CurrentMove int            `json:"current_move"`
}

// NewGameHistory - history holding only the empty board.
func NewGameHistory() GameHistory {
	return GameHistory{
		Entries:     []HistoryEntry{{Board: Board{}}},
		CurrentMove: 0,
	}
}

// Play appends entry after the current move and selects it. Legality of the
// board is checked by the caller.
func (that *GameHistory) Play(entry HistoryEntry) {
	entries := make([]HistoryEntry, that.CurrentMove+1, that.CurrentMove+2)
	copy(entries, that.Entries[:that.CurrentMove+1])

	that.Entries = append(entries, entry)
	that.CurrentMove = len(that.Entries) - 1
}

// JumpTo selects an earlier or later entry without changing the log.
func (that *GameHistory) JumpTo(move int) error {
	if move < 0 || move >= len(that.Entries) {
		return fmt.Errorf("%w: move %d, history has %d entries", apperror.ErrMoveOutOfRange, move, len(that.Entries))
	}

	that.CurrentMove = move

	return nil
}

func (that *GameHistory) Current() Board {
	return that.Entries[that.CurrentMove].Board
}

func (that *GameHistory) CurrentEntry() HistoryEntry {
	return that.Entries[that.CurrentMove]
}

func (that *GameHistory) Len() int {
	return len(that.Entries)
}

func (that *GameHistory) IsAtStart() bool {
	return that.CurrentMove == 0
}

// NextMark - X moves on even indices, O on odd.
func (that *GameHistory) NextMark() Mark {
	if that.CurrentMove%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Validate checks the invariants of a history loaded from storage.
func (that *GameHistory) Validate() error {
	if len(that.Entries) == 0 {
		return fmt.Errorf("%w: no entries", apperror.ErrCorruptedHistory)
	}

	if that.CurrentMove < 0 || that.CurrentMove >= len(that.Entries) {
		return fmt.Errorf("%w: current move %d of %d", apperror.ErrCorruptedHistory, that.CurrentMove, len(that.Entries))
	}

	if that.Entries[0].Board.Occupied() != 0 {
		return fmt.Errorf("%w: first board is not empty", apperror.ErrCorruptedHistory)
	}

	expected := PlayerX
	for i := 1; i < len(that.Entries); i++ {
		prev, next := that.Entries[i-1].Board, that.Entries[i].Board

		changed := 0
		for cell := range next {
			if prev[cell] == next[cell] {
				continue
			}

			if prev[cell] != EmptyCell || next[cell] != expected {
				return fmt.Errorf("%w: move %d changes cell %d", apperror.ErrCorruptedHistory, i, cell)
			}
			changed++
		}

		if changed != 1 {
			return fmt.Errorf("%w: move %d changes %d cells", apperror.ErrCorruptedHistory, i, changed)
		}

		expected = expected.Opponent()
	}

	return nil
}
