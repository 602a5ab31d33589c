package service

import (
	"net/http"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
)

var (
	ErrNoStories = commonerrors.NewDomainError(
		"NO_STORIES",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"No stories found",
	)
)

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
