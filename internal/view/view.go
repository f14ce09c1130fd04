// Package view turns a session into the display model shown to players:
// the status line, the board with its winning squares and the move list.
package view

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	statusWinner = "Winner: %s"
	statusDraw   = "Game over, it's a draw"
	statusNext   = "Next player: %s"

	labelCurrent = "You are at move #%d"
	labelStart   = "Go to game start"
	labelMove    = "Go to move #%d"
)

type View struct {
	SessionID   string                                            `json:"session_id"`
	Status      string                                            `json:"status"`
	Board       entity.Board                                      `json:"board"`
	Rows        [entity.BoardWidth][entity.BoardWidth]entity.Mark `json:"rows"`
	CurrentMove int                                               `json:"current_move"`
	NextPlayer  entity.Mark                                       `json:"next_player,omitempty"`
	Winner      entity.Mark                                       `json:"winner,omitempty"`
	WinningLine []int                                             `json:"winning_line,omitempty"`
	Draw        bool                                              `json:"draw"`
	Reversed    bool                                              `json:"reversed"`
	Moves       []Move                                            `json:"moves"`
}

// Move is one line of the move list. Jumpable is false for the move the
// player is looking at.
type Move struct {
	Move       int                `json:"move"`
	Label      string             `json:"label"`
	Jumpable   bool               `json:"jumpable"`
	Coordinate *entity.Coordinate `json:"coordinate,omitempty"`
}

// Render builds the display model of session.
func Render(session *entity.Session) View {
	history := &session.History
	board := history.Current()

	view := View{
		SessionID:   session.ID,
		Board:       board,
		Rows:        board.Rows(),
		CurrentMove: history.CurrentMove,
		Reversed:    session.Reversed,
		Moves:       moveList(history, session.Reversed),
	}

	result, won := entity.DetermineWinner(board)

	switch {
	case won:
		view.Winner = result.Winner
		view.WinningLine = result.Line[:]
		view.Status = fmt.Sprintf(statusWinner, result.Winner)
	case entity.IsDraw(board):
		view.Draw = true
		view.Status = statusDraw
	default:
		view.NextPlayer = history.NextMark()
		view.Status = fmt.Sprintf(statusNext, view.NextPlayer)
	}

	return view
}

func moveList(history *entity.GameHistory, reversed bool) []Move {
	moves := make([]Move, 0, history.Len())

	for move, entry := range history.Entries {
		// nothing to go back to yet
		if move == 0 && history.IsAtStart() {
			continue
		}

		moves = append(moves, Move{
			Move:       move,
			Label:      label(move, history.CurrentMove, entry.Coordinate),
			Jumpable:   move != history.CurrentMove,
			Coordinate: entry.Coordinate,
		})
	}

	if reversed {
		slices.Reverse(moves)
	}

	return moves
}

func label(move, current int, coordinate *entity.Coordinate) string {
	var text string

	switch {
	case move == current:
		text = fmt.Sprintf(labelCurrent, move)
	case move == 0:
		text = labelStart
	default:
		text = fmt.Sprintf(labelMove, move)
	}

	if coordinate != nil {
		text += " " + coordinate.String()
	}

	return text
}
