package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// NextEntry builds the snapshot produced by the next player taking cell on
// the current board. The history itself is not modified.
func NextEntry(history *entity.GameHistory, cell int, recordCoordinates bool) (entity.HistoryEntry, error) {
	board := history.Current()

	if err := validateMove(board, cell); err != nil {
		return entity.HistoryEntry{}, err
	}

	board[cell] = history.NextMark()

	entry := entity.HistoryEntry{Board: board}
	if recordCoordinates {
		coordinate := entity.CoordinateOf(cell)
		entry.Coordinate = &coordinate
	}

	return entry, nil
}

// MakeTurn - places the next mark on cell and records the new board in the session history.
func MakeTurn(session *entity.Session, cell int) error {
	entry, err := NextEntry(&session.History, cell, session.RecordCoordinates)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	session.History.Play(entry)

	return nil
}

// IsSilentReject reports whether err is one of the rejections a click on the
// board ignores: an occupied cell or a game that is already won.
func IsSilentReject(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrGameFinished)
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCell, cell)
	}

	if result, won := entity.DetermineWinner(board); won {
		return fmt.Errorf("%w: %s won on %v", apperror.ErrGameFinished, result.Winner, result.Line)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}
