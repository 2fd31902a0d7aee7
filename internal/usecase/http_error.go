package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "github.com/wendynovel0/prueba/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repositoryのエラーをHTTPErrorにする
func storeError(err error, notFound string, conflict string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, repo.ErrConflict):
		return NewHTTPError(http.StatusConflict, conflict)
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
}
