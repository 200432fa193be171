package repositories

import "context"

// TxRepositories предоставляет репозитории, привязанные к одной транзакции.
type TxRepositories interface {
	Visitors() VisitorRepository
	Documents() DocumentRepository
}

// Transactor выполняет fn в одной транзакции.
// Ошибка fn откатывает все изменения, успешное завершение фиксирует их.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
