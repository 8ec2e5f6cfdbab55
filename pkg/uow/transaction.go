package uow

import (
	"sync"

	"github.com/jackc/pgx/v5"
)

// Transaction hands out repositories bound to one pgx transaction. Each repository is built once per
// transaction and reused by later Get calls.
type Transaction struct {
	factories map[RepositoryName]RepositoryFactory
	tx        pgx.Tx

	mu    sync.Mutex
	built map[RepositoryName]Repository
}

func NewTransaction(tx pgx.Tx, factories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{
		factories: factories,
		tx:        tx,
		built:     make(map[RepositoryName]Repository, len(factories)),
	}
}

// Get returns the repository bound to the transaction. Unknown names give a *RepositoryError wrapping
// ErrRepositoryNotRegistered.
func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if repo, ok := t.built[name]; ok {
		return repo, nil
	}
	factory, ok := t.factories[name]
	if !ok {
		return nil, repositoryErr(name, ErrRepositoryNotRegistered)
	}
	repo := factory(t.tx)
	t.built[name] = repo
	return repo, nil
}

// GetAs is Get with the result asserted to T.
// Errors: ErrRepositoryNotRegistered, ErrInvalidRepositoryType.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	var res T
	repo, err := t.Get(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	return assertRepository[T](name, repo)
}

func assertRepository[T any](name RepositoryName, repo Repository) (T, error) {
	res, ok := repo.(T)
	if !ok {
		return res, repositoryErr(name, ErrInvalidRepositoryType)
	}
	return res, nil
}
