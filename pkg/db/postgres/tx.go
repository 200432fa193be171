package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner открывает транзакцию. Ему удовлетворяют *pgxpool.Pool и pgxmock.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Ошибки границы транзакции.
var (
	ErrBeginTx  = errors.New("failed to begin transaction")
	ErrCommitTx = errors.New("failed to commit transaction")
)

// RunInTx открывает транзакцию, выполняет fn и фиксирует ее.
// При ошибке fn или панике транзакция откатывается; паника пробрасывается дальше.
func RunInTx(ctx context.Context, db TxBeginner, opts pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(ctx); cErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitTx, cErr)
		}
	}()

	return fn(ctx, tx)
}
