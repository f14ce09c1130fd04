package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

var errBadParam = errors.New("bad request parameter")

type sessionUseCase interface {
	NewSession(ctx context.Context, recordCoordinates *bool) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)

	ClickCell(ctx context.Context, id string, cell int) (*entity.Session, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Session, error)
	ToggleOrder(ctx context.Context, id string) (*entity.Session, error)

	EndSession(ctx context.Context, id string) error
}

// newSessionRequest - a missing record_coordinates falls back to the
// configured default.
type newSessionRequest struct {
	RecordCoordinates *bool `json:"record_coordinates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger         *slog.Logger
	sessionUseCase sessionUseCase
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionRequest

	// an empty body means default options
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, "createSession", errBadParam)
		return
	}

	session, err := that.sessionUseCase.NewSession(r.Context(), req.RecordCoordinates)
	if err != nil {
		that.writeError(w, "createSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view.Render(session))
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessionUseCase.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.Render(session))
}

func (that *handlers) clickCell(w http.ResponseWriter, r *http.Request) {
	cell, err := intParam(r, "cell")
	if err != nil {
		that.writeError(w, "clickCell", err)
		return
	}

	session, err := that.sessionUseCase.ClickCell(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, "clickCell", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.Render(session))
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := intParam(r, "move")
	if err != nil {
		that.writeError(w, "jumpTo", err)
		return
	}

	session, err := that.sessionUseCase.JumpTo(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, "jumpTo", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.Render(session))
}

func (that *handlers) toggleOrder(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessionUseCase.ToggleOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "toggleOrder", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.Render(session))
}

func (that *handlers) endSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessionUseCase.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "endSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errBadParam
	}

	return value, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrMoveOutOfRange),
		errors.Is(err, errBadParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
