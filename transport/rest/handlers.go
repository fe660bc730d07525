package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/icon"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/notifier"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

var errBadBody = errors.New("invalid request body")

type newGameRequest struct {
	ID string `json:"id"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	Game     *entity.Game `json:"game,omitempty"`
	Status   string       `json:"status,omitempty"`
	Messages []string     `json:"messages"`
	Error    string       `json:"error,omitempty"`
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, errBadBody, nil)
		return
	}

	if req.ID != "" {
		game, err := that.games.GetGame(r.Context(), req.ID)
		if err == nil {
			that.writeGame(w, http.StatusOK, game, nil)
			return
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			that.writeError(w, err, nil)
			return
		}
	}

	game, err := that.games.GetOrCreateGame(r.Context(), req.ID)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeGame(w, http.StatusCreated, game, nil)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeGame(w, http.StatusOK, game, nil)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeError(w, errBadBody, nil)
		return
	}

	collector := notifier.NewCollector()
	screen := usecase.NewScreen(chi.URLParam(r, "id"), that.games, collector)

	game, err := screen.Tap(r.Context(), *req.Cell)
	if err != nil {
		that.writeError(w, err, &gameResponse{Game: game, Messages: collector.Messages()})
		return
	}

	that.writeGame(w, http.StatusOK, game, collector.Messages())
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	collector := notifier.NewCollector()
	screen := usecase.NewScreen(chi.URLParam(r, "id"), that.games, collector)

	game, err := screen.Restart(r.Context())
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeGame(w, http.StatusOK, game, collector.Messages())
}

func (that *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, icon.ForLabel(chi.URLParam(r, "name")))
}

func (that *Server) writeGame(w http.ResponseWriter, code int, game *entity.Game, messages []string) {
	if messages == nil {
		messages = []string{}
	}

	that.writeJSON(w, code, gameResponse{
		Game:     game,
		Status:   usecase.StatusLine(game),
		Messages: messages,
	})
}

// writeError answers with the status code matching err. resp carries whatever
// the handler already knows about the board.
func (that *Server) writeError(w http.ResponseWriter, err error, resp *gameResponse) {
	if resp == nil {
		resp = &gameResponse{}
	}

	if resp.Messages == nil {
		resp.Messages = []string{}
	}

	if resp.Game != nil {
		resp.Status = usecase.StatusLine(resp.Game)
	}

	code := statusCode(err)
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		resp.Error = http.StatusText(code)
	} else {
		resp.Error = err.Error()
	}

	that.writeJSON(w, code, resp)
}

func (that *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, errBadBody):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
