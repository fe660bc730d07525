package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

var (
	errNotConnected = errors.New("connect to a game first")
	errNoCell       = errors.New("cell is required")
)

// handleConnect attaches the socket to a board, creating it when needed.
func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		that.sendError(conn, "invalid payload")
		return err
	}

	var gameID string
	if payloadReq.Game != nil {
		gameID = payloadReq.Game.ID
	}

	game, err := that.games.GetOrCreateGame(ctx, gameID)
	if err != nil {
		that.sendError(conn, "failed to get the game")
		return fmt.Errorf("failed to get or create game: %w", err)
	}

	that.join(game.ID, conn)
	conn.screen = usecase.NewScreen(game.ID, that.games, &roomNotifier{server: that, gameID: game.ID})

	log.Info("connected to game", "gameID", game.ID, "watchers", that.roomSize(game.ID))

	return conn.send(ActionState, statePayload(game))
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	if conn.screen == nil {
		that.sendError(conn, errNotConnected.Error())
		return errNotConnected
	}

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		that.sendError(conn, "invalid payload")
		return err
	}

	if payloadReq.Cell == nil {
		that.sendError(conn, errNoCell.Error())
		return errNoCell
	}

	game, err := conn.screen.Tap(ctx, *payloadReq.Cell)
	if err != nil {
		if _, ok := usecase.RejectionMessage(err); ok {
			log.Debug("turn rejected", "gameID", conn.gameID, "error", err)
			that.sendError(conn, rejectionError(err))
			return nil
		}

		that.sendError(conn, "failed to make turn")
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcast(game.ID, ActionState, statePayload(game))

	return nil
}

func (that *Server) handleGameRestart(ctx context.Context, _ *Message, conn *connection) error {
	if conn.screen == nil {
		that.sendError(conn, errNotConnected.Error())
		return errNotConnected
	}

	game, err := conn.screen.Restart(ctx)
	if err != nil {
		that.sendError(conn, "failed to restart the game")
		return err
	}

	that.broadcast(game.ID, ActionState, statePayload(game))

	return nil
}

func (that *Server) sendError(conn *connection, errorMsg string) {
	if err := conn.send(ActionError, Payload{Error: errorMsg}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}

func unmarshalPayload(msg *Message, payload *Payload) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

func statePayload(game *entity.Game) Payload {
	return Payload{Game: game, Status: usecase.StatusLine(game)}
}

func rejectionError(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return apperror.ErrCellOccupied.Error()
	case errors.Is(err, apperror.ErrGameFinished):
		return apperror.ErrGameFinished.Error()
	default:
		return apperror.ErrInvalidCell.Error()
	}
}
