package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConn(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

func TestManager_AcquireCachesConnection(t *testing.T) {
	mock := newMockConn(t)
	var dials int32

	m := NewManager(func(ctx context.Context) (Conn, error) {
		atomic.AddInt32(&dials, 1)
		return mock, nil
	}, time.Second)

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)
	second, err := m.Acquire(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
}

func TestManager_ConcurrentAcquireSharesAttempt(t *testing.T) {
	mock := newMockConn(t)
	var dials int32
	release := make(chan struct{})

	m := NewManager(func(ctx context.Context) (Conn, error) {
		atomic.AddInt32(&dials, 1)
		<-release
		return mock, nil
	}, time.Second)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]Conn, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.Acquire(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, mock, results[i])
	}
}

func TestManager_FailureClearsState(t *testing.T) {
	mock := newMockConn(t)
	var dials int32

	m := NewManager(func(ctx context.Context) (Conn, error) {
		if atomic.AddInt32(&dials, 1) == 1 {
			return nil, errors.New("connection refused")
		}
		return mock, nil
	}, time.Second)

	_, err := m.Acquire(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	conn, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, mock, conn)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dials))
}

func TestManager_ResetForcesReconnect(t *testing.T) {
	var dials int32

	m := NewManager(func(ctx context.Context) (Conn, error) {
		atomic.AddInt32(&dials, 1)
		return newMockConn(t), nil
	}, time.Second)

	_, err := m.Acquire(context.Background())
	require.NoError(t, err)

	m.Reset()

	_, err = m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dials))
}

func TestManager_DialRespectsConnectTimeout(t *testing.T) {
	m := NewManager(func(ctx context.Context) (Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, 20*time.Millisecond)

	_, err := m.Acquire(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManager_HealthCheck(t *testing.T) {
	mock := newMockConn(t)
	mock.ExpectPing()

	m := NewManager(func(ctx context.Context) (Conn, error) {
		return mock, nil
	}, time.Second)

	require.NoError(t, m.HealthCheck(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_StatsWithoutPool(t *testing.T) {
	m := NewManager(func(ctx context.Context) (Conn, error) {
		return nil, errors.New("unused")
	}, time.Second)

	_, err := m.Stats()

	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "events_slug_key"}

	name, ok := UniqueViolation(errors.Join(errors.New("insert"), err))
	assert.True(t, ok)
	assert.Equal(t, "events_slug_key", name)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = UniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}
