package postgres

import (
	// Go Internal Packages
	"context"

	// External Packages
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL CHECK (user_id > 0),
		amount         NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
		payment_method VARCHAR(20) NOT NULL
			CHECK (payment_method IN ('credit_card', 'debit_card', 'pix', 'bank_slip')),
		description    TEXT NOT NULL DEFAULT '',
		status         VARCHAR(10) NOT NULL DEFAULT 'PENDING'
			CHECK (status IN ('PENDING', 'SETTLED', 'FAILED')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_created_idx ON transactions (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS transactions_created_idx ON transactions (created_at DESC)`,
}

// EnsureSchema creates the transactions table and its indexes. It is safe to
// run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
