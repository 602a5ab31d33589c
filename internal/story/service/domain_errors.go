package service

import (
	"net/http"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
)

var (
	ErrStoryValidation = commonerrors.NewDomainError(
		"STORY_VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"title, author and content are required",
	)

	ErrStoryNotFound = commonerrors.NewDomainError(
		"STORY_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"story not found",
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
