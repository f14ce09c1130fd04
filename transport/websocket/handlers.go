package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const (
	actionSessionNew  = "session:new"
	actionSessionGet  = "session:get"
	actionCellClick   = "cell:click"
	actionMoveJump    = "move:jump"
	actionOrderToggle = "order:toggle"
	actionSessionEnd  = "session:end"
)

var (
	errSessionRequired = errors.New("session_id is required")
	errCellRequired    = errors.New("cell is required")
	errMoveRequired    = errors.New("move is required")
)

// Payload is shared by requests and replies. Requests fill the input
// fields, replies carry the session view or an error.
type Payload struct {
	SessionID         string     `json:"session_id,omitempty"`
	RecordCoordinates *bool      `json:"record_coordinates,omitempty"`
	Cell              *int       `json:"cell,omitempty"`
	Move              *int       `json:"move,omitempty"`
	View              *view.View `json:"view,omitempty"`
	Error             string     `json:"error,omitempty"`
}

func (that *Server) handleNewSession(ctx context.Context, req *Payload) (*Payload, error) {
	session, err := that.sessionUseCase.NewSession(ctx, req.RecordCoordinates)
	if err != nil {
		return nil, err
	}

	return reply(session), nil
}

func (that *Server) handleGetSession(ctx context.Context, req *Payload) (*Payload, error) {
	if req.SessionID == "" {
		return nil, errSessionRequired
	}

	session, err := that.sessionUseCase.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	return reply(session), nil
}

func (that *Server) handleCellClick(ctx context.Context, req *Payload) (*Payload, error) {
	if req.SessionID == "" {
		return nil, errSessionRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	session, err := that.sessionUseCase.ClickCell(ctx, req.SessionID, *req.Cell)
	if err != nil {
		return nil, err
	}

	return reply(session), nil
}

func (that *Server) handleMoveJump(ctx context.Context, req *Payload) (*Payload, error) {
	if req.SessionID == "" {
		return nil, errSessionRequired
	}

	if req.Move == nil {
		return nil, errMoveRequired
	}

	session, err := that.sessionUseCase.JumpTo(ctx, req.SessionID, *req.Move)
	if err != nil {
		return nil, err
	}

	return reply(session), nil
}

func (that *Server) handleOrderToggle(ctx context.Context, req *Payload) (*Payload, error) {
	if req.SessionID == "" {
		return nil, errSessionRequired
	}

	session, err := that.sessionUseCase.ToggleOrder(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	return reply(session), nil
}

func (that *Server) handleSessionEnd(ctx context.Context, req *Payload) (*Payload, error) {
	if req.SessionID == "" {
		return nil, errSessionRequired
	}

	if err := that.sessionUseCase.EndSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	return &Payload{SessionID: req.SessionID}, nil
}

func reply(session *entity.Session) *Payload {
	v := view.Render(session)

	return &Payload{
		SessionID: session.ID,
		View:      &v,
	}
}

// errorText hides storage failures from clients.
func errorText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrMoveOutOfRange),
		errors.Is(err, errSessionRequired),
		errors.Is(err, errCellRequired),
		errors.Is(err, errMoveRequired):
		return err.Error()
	default:
		return "internal error"
	}
}
