package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const BoardSize = 9

// WinCombos lists the rows, then the columns, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome is the cached result of a board: ongoing, won by Winner, or a draw.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Won(mark Mark) Outcome {
	return Outcome{Status: StatusWon, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// Game is the engine value: a 3x3 board, the mark to move next and the outcome.
type Game struct {
	ID      string          `json:"id"`
	Board   [BoardSize]Mark `json:"board"`
	Turn    Mark            `json:"player_turn"`
	Outcome Outcome         `json:"outcome"`
	Line    *[3]int         `json:"line"`
	Moves   []int           `json:"moves"`
}

func NewGame(id string) *Game {
	game := &Game{ID: id}
	game.Reset()

	return game
}

// Replay builds a fresh game and applies moves in order.
func Replay(id string, moves []int) (*Game, error) {
	game := NewGame(id)

	for i, cell := range moves {
		if _, err := game.ApplyMove(cell); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}

	return game, nil
}

// Reset puts the game back to its initial state. It never fails.
func (that *Game) Reset() {
	that.Board = [BoardSize]Mark{}
	that.Turn = PlayerX
	that.Outcome = InProgress()
	that.Line = nil
	that.Moves = []int{}
}

// ApplyMove places the current mark on cell, flips the turn and recomputes the outcome.
// A rejected move leaves the game untouched.
func (that *Game) ApplyMove(cell int) (Outcome, error) {
	if that.IsFinished() {
		return that.Outcome, apperror.ErrGameFinished
	}

	if cell < 0 || cell >= BoardSize {
		return that.Outcome, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return that.Outcome, apperror.ErrCellOccupied
	}

	that.Board[cell] = that.Turn
	that.Turn = that.Turn.Opponent()
	that.Moves = append(that.Moves, cell)

	that.Outcome = EvaluateOutcome(that.Board)
	if line, ok := WinningLine(that.Board); ok {
		that.Line = &line
	}

	return that.Outcome, nil
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that *Game) IsOngoing() bool {
	return that.Outcome.Status == StatusOngoing
}

// WinningLine returns the first line in WinCombos held entirely by one mark.
func WinningLine(board [BoardSize]Mark) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func EvaluateOutcome(board [BoardSize]Mark) Outcome {
	if line, ok := WinningLine(board); ok {
		return Won(board[line[0]])
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == EmptyCell {
			return InProgress()
		}
	}

	return Draw()
}
