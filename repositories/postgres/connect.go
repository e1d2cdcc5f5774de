package postgres

import (
	// Go Internal Packages
	"context"
	"time"

	// External Packages
	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	URI             string
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Connect creates the bounded connection pool and verifies it with a ping.
// Callers acquire a connection per query, none is held across calls.
func Connect(ctx context.Context, conf PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(conf.URI)
	if err != nil {
		return nil, err
	}

	if conf.MaxConns > 0 {
		cfg.MaxConns = conf.MaxConns
	}
	if conf.MinConns > 0 {
		cfg.MinConns = conf.MinConns
	}
	if conf.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = conf.MaxConnIdleTime
	}
	if conf.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = conf.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, pingErr
	}
	return pool, nil
}
