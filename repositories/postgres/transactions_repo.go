package postgres

import (
	// Go Internal Packages
	"context"
	goerrors "errors"
	"fmt"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const txColumns = `id, user_id, amount::text, payment_method, description, status, created_at, updated_at`

type TxRepository struct {
	pool *pgxpool.Pool
}

func NewTxRepository(pool *pgxpool.Pool) *TxRepository {
	return &TxRepository{pool: pool}
}

// Create inserts a new transaction in PENDING status
func (r *TxRepository) Create(ctx context.Context, userID int64, amount decimal.Decimal, method models.PaymentMethod, description string) (models.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, amount, payment_method, description, status)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING `+txColumns,
		userID, amount.String(), string(method), description, string(models.StatusPending))

	tx, err := scanTransaction(row)
	if err != nil {
		return models.Transaction{}, errors.StoreErr("create transaction", err)
	}
	return tx, nil
}

// UpdateStatus moves a PENDING transaction to a terminal status. The
// conditional update makes the transition atomic per row.
func (r *TxRepository) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (models.Transaction, error) {
	if !status.Terminal() {
		return models.Transaction{}, errors.E(errors.Invalid, fmt.Sprintf("status %q is not a terminal status", status), nil)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING `+txColumns,
		string(status), id, string(models.StatusPending))

	tx, err := scanTransaction(row)
	if err == nil {
		return tx, nil
	}
	if !goerrors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, errors.StoreErr("update transaction status", err)
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{}, errors.TransitionErr(id, string(current.Status), string(status))
}

// Get returns a single transaction by id
func (r *TxRepository) Get(ctx context.Context, id int64) (models.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)

	tx, err := scanTransaction(row)
	if goerrors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, errors.NotFoundErr("transaction", id)
	}
	if err != nil {
		return models.Transaction{}, errors.StoreErr("get transaction", err)
	}
	return tx, nil
}

// ListByUser returns every transaction of a user, newest first
func (r *TxRepository) ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, errors.StoreErr("list transactions by user", err)
	}
	return collectTransactions(rows, "list transactions by user")
}

// ListPage returns a page of transactions, newest first
func (r *TxRepository) ListPage(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, errors.StoreErr("list transactions", err)
	}
	return collectTransactions(rows, "list transactions")
}

func collectTransactions(rows pgx.Rows, op string) ([]models.Transaction, error) {
	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, errors.StoreErr(op, err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		tx             models.Transaction
		amount, method string
		status         string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &amount, &method, &tx.Description, &status, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return models.Transaction{}, err
	}

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	tx.PaymentMethod = models.PaymentMethod(method)
	tx.Status = models.TransactionStatus(status)
	return tx, nil
}
