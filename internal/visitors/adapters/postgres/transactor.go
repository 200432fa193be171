package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	pgdb "visitlog/pkg/db/postgres"
	"visitlog/pkg/logger"
)

// Transactor реализует repositories.Transactor поверх транзакций pgx.
type Transactor struct {
	db pgdb.TxBeginner
}

// NewTransactor создает новый Transactor.
func NewTransactor(db pgdb.TxBeginner) *Transactor {
	return &Transactor{db: db}
}

// RunInTx выполняет fn в транзакции READ COMMITTED.
// Доменные ошибки возвращаются как есть, остальные оборачиваются в entities.ErrTransactionFailed.
func (t *Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	err := pgdb.RunInTx(ctx, t.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, txRepositories{tx: tx})
	})
	if err == nil {
		return nil
	}

	if entities.IsDomainError(err) {
		return err
	}

	logger.Log(ctx).Error(ctx, "transaction failed", zap.String("method", "Transactor.RunInTx"), zap.Error(err))
	return fmt.Errorf("%w: %w", entities.ErrTransactionFailed, err)
}

type txRepositories struct {
	tx pgx.Tx
}

func (r txRepositories) Visitors() repositories.VisitorRepository {
	return NewVisitorRepository(r.tx)
}

func (r txRepositories) Documents() repositories.DocumentRepository {
	return NewDocumentRepository(r.tx)
}
