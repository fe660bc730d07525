package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/notifier"
)

const (
	MessageCellOccupied = "This box is already filled! 🚫"
	MessageGameOver     = "Game is over, restart to play again! 🔄"
	MessageInvalidCell  = "There is no such box! 🚫"
	MessageDraw         = "It's a draw! 🤝"
)

type games interface {
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
}

// Screen turns taps on one board into game moves and tells the player what happened.
type Screen struct {
	gameID   string
	games    games
	notifier notifier.Notifier
}

func NewScreen(gameID string, games games, sink notifier.Notifier) *Screen {
	return &Screen{
		gameID:   gameID,
		games:    games,
		notifier: sink,
	}
}

func (that *Screen) GameID() string {
	return that.gameID
}

// Tap plays the box at index for the mark whose turn it is.
func (that *Screen) Tap(ctx context.Context, index int) (*entity.Game, error) {
	game, err := that.games.MakeTurn(ctx, that.gameID, index)
	if err != nil {
		if message, ok := RejectionMessage(err); ok {
			that.notifier.Notify(message)
		}

		return game, err
	}

	switch game.Outcome.Status {
	case entity.StatusWon:
		that.notifier.Notify(WinMessage(game.Outcome.Winner))
	case entity.StatusDraw:
		that.notifier.Notify(MessageDraw)
	}

	return game, nil
}

func (that *Screen) Restart(ctx context.Context) (*entity.Game, error) {
	game, err := that.games.Restart(ctx, that.gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	return game, nil
}

// RejectionMessage is the text shown to the player for a rejected move.
func RejectionMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return MessageCellOccupied, true
	case errors.Is(err, apperror.ErrGameFinished):
		return MessageGameOver, true
	case errors.Is(err, apperror.ErrInvalidCell):
		return MessageInvalidCell, true
	default:
		return "", false
	}
}

func WinMessage(mark entity.Mark) string {
	return fmt.Sprintf("%s won the game! 🏆", mark)
}

// StatusLine is the heading shown above the board.
func StatusLine(game *entity.Game) string {
	switch game.Outcome.Status {
	case entity.StatusWon:
		return WinMessage(game.Outcome.Winner)
	case entity.StatusDraw:
		return "It's a Draw! 🤝"
	default:
		return fmt.Sprintf("%s's Turn", game.Turn)
	}
}
