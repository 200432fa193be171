package postgres

import (
	"visitlog/internal/visitors/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool Pool
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool Pool) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// VisitorRepository возвращает репозиторий посетителей вне транзакции.
func (f *RepositoryFactory) VisitorRepository() repositories.VisitorRepository {
	return NewVisitorRepository(f.pool)
}

// DocumentRepository возвращает репозиторий документов вне транзакции.
func (f *RepositoryFactory) DocumentRepository() repositories.DocumentRepository {
	return NewDocumentRepository(f.pool)
}

// DepartmentRepository возвращает репозиторий подразделений.
func (f *RepositoryFactory) DepartmentRepository() repositories.DepartmentRepository {
	return NewDepartmentRepository(f.pool)
}

// Transactor возвращает границу транзакции для связанных изменений посетителя и документа.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return NewTransactor(f.pool)
}
