package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type SessionUseCase interface {
	NewSession(ctx context.Context, recordCoordinates *bool) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)

	ClickCell(ctx context.Context, id string, cell int) (*entity.Session, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Session, error)
	ToggleOrder(ctx context.Context, id string) (*entity.Session, error)

	EndSession(ctx context.Context, id string) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type sessionUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	recordCoordinates bool

	locksMutex sync.Mutex
	locks      map[string]*sessionLock

	now   func() time.Time
	newID func() string
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionUseCase - recordCoordinates is used for new sessions that do not
// choose themselves.
func NewSessionUseCase(logger *slog.Logger, sessionRepo sessionRepo, recordCoordinates bool) SessionUseCase {
	return &sessionUseCase{
		logger:            logger.With("component", "session_usecase"),
		sessionRepo:       sessionRepo,
		recordCoordinates: recordCoordinates,
		locks:             make(map[string]*sessionLock),
		now:               time.Now,
		newID:             uuid.NewString,
	}
}

func (that *sessionUseCase) NewSession(ctx context.Context, recordCoordinates *bool) (*entity.Session, error) {
	record := that.recordCoordinates
	if recordCoordinates != nil {
		record = *recordCoordinates
	}

	session := entity.NewSession(that.newID(), record, that.now())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *sessionUseCase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ClickCell plays the next mark on cell. A click on an occupied cell or on a
// won board leaves the session as it is and is not an error.
func (that *sessionUseCase) ClickCell(ctx context.Context, id string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "ClickCell", "sessionID", id, "cell", cell)

	unlock := that.lock(id)
	defer unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(session, cell); err != nil {
		if tictactoe.IsSilentReject(err) {
			log.Debug("click ignored", "reason", err)
			return session, nil
		}

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	log.Debug("turn played", "move", session.History.CurrentMove, "board", session.History.Current().String())

	return session, nil
}

func (that *sessionUseCase) JumpTo(ctx context.Context, id string, move int) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.History.JumpTo(move); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *sessionUseCase) ToggleOrder(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.ToggleOrder()

	if err = that.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *sessionUseCase) EndSession(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

func (that *sessionUseCase) save(ctx context.Context, session *entity.Session) error {
	session.Touch(that.now())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// lock serialises transitions of one session inside this process: a
// load-modify-save must finish before the next one for the same id starts.
// The entry leaves the map with its last holder.
func (that *sessionUseCase) lock(id string) func() {
	that.locksMutex.Lock()
	l, ok := that.locks[id]
	if !ok {
		l = &sessionLock{}
		that.locks[id] = l
	}
	l.refs++
	that.locksMutex.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		that.locksMutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, id)
		}
		that.locksMutex.Unlock()
	}
}
