package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a memory store holding a session
		sessionRepo := NewMemorySessionRepository()
		session := sessionWithMoves("123", 0, 4)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller keeps changing its own session
		session.History.Entries[1].Coordinate.Row = 2
		require.NoError(t, session.History.JumpTo(0))

		// Then: the stored session is unaffected
		stored, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 2, stored.History.CurrentMove)
		assert.Equal(t, 0, stored.History.Entries[1].Coordinate.Row)
	})

	t.Run("Returned sessions do not alias each other", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, sessionWithMoves("123", 0)))

		first, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		first.History.Entries[1].Board[0] = ""

		second, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 1, second.History.Current().Occupied())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()

		session, err := sessionRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, session)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, sessionWithMoves("123")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))
		require.ErrorIs(t, sessionRepo.DeleteByID(ctx, "123"), apperror.ErrSessionNotFound)

		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
