package entity

import (
	"fmt"
	"strings"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardWidth = 3
	BoardSize  = BoardWidth * BoardWidth
)

// WinLine - three cell indices that win when they hold the same mark.
type WinLine [3]int

// WinCombos are checked in this order: rows top to bottom, columns left to right,
// then the 0-4-8 and 2-4-6 diagonals. The first match wins.
var WinCombos = []WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Result - outcome of the win check. The zero value means there is no winner.
type Result struct {
	Winner Mark    `json:"winner"`
	Line   WinLine `json:"line"`
}

func CoordinateOf(cell int) Coordinate {
	return Coordinate{Row: cell / BoardWidth, Col: cell % BoardWidth}
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// DetermineWinner returns the first satisfied line in WinCombos order.
func DetermineWinner(board Board) (Result, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Winner: a, Line: combo}, true
		}
	}

	return Result{}, false
}

// IsDraw - the board is full and nobody has a line.
func IsDraw(board Board) bool {
	if _, won := DetermineWinner(board); won {
		return false
	}

	return board.IsFull()
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) Occupied() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that Board) Rows() [BoardWidth][BoardWidth]Mark {
	var rows [BoardWidth][BoardWidth]Mark
	for i, cell := range that {
		rows[i/BoardWidth][i%BoardWidth] = cell
	}

	return rows
}

func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}

		if i%BoardWidth == BoardWidth-1 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// Opponent - the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
