package uow

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotRegistered     = errors.New("[uow] repository not registered")
	ErrRepositoryAlreadyRegistered = errors.New("[uow] repository already registered")
	ErrInvalidRepositoryType       = errors.New("[uow] invalid repository type")
)

// RepositoryError names the repository a lookup failed for. It unwraps to one of the sentinels above.
type RepositoryError struct {
	Name RepositoryName
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Name)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repositoryErr(name RepositoryName, err error) error {
	return &RepositoryError{Name: name, Err: err}
}
