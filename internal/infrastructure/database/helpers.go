package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const uniqueViolationCode = "23505"

// UniqueViolation trả về tên constraint nếu err là unique violation (SQLSTATE 23505)
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// PoolStats chứa thống kê về connection pool
type PoolStats struct {
	AcquireCount         int64
	AcquireDuration      time.Duration
	AcquiredConns        int32
	CanceledAcquireCount int64
	IdleConns            int32
	MaxConns             int32
	TotalConns           int32
	NewConnsCount        int64
}

// Stats trả về snapshot của pool statistics.
// Không có connection, hoặc connection không phải pgxpool, thì trả về ErrNotConnected.
func (m *Manager) Stats() (*PoolStats, error) {
	pool, ok := m.cached().(*pgxpool.Pool)
	if !ok || pool == nil {
		return nil, ErrNotConnected
	}

	raw := pool.Stat()
	stats := &PoolStats{
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		AcquiredConns:        raw.AcquiredConns(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		IdleConns:            raw.IdleConns(),
		MaxConns:             raw.MaxConns(),
		TotalConns:           raw.TotalConns(),
		NewConnsCount:        raw.NewConnsCount(),
	}

	log.Debug().
		Int32("total", stats.TotalConns).
		Int32("max", stats.MaxConns).
		Int32("acquired", stats.AcquiredConns).
		Int32("idle", stats.IdleConns).
		Dur("avg_acquire", calculateAvgDuration(stats.AcquireDuration, stats.AcquireCount)).
		Msg("[DATABASE] Pool statistics")

	return stats, nil
}

// calculateAvgDuration là helper để tính average acquire duration
func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}
