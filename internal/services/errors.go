package services

import (
	"errors"
	"fmt"

	"partshop/internal/apperr"
	"partshop/internal/repositories"
)

// lookupError converts a repository lookup failure into the service taxonomy.
func lookupError(err error, entity string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("%s not found", entity)
	}
	return apperr.Unexpected(fmt.Sprintf("failed to load %s", entity), err)
}

// writeError is lookupError for mutations, which can also lose a race with
// a concurrent delete.
func writeError(err error, action, entity string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("%s not found", entity)
	}
	return apperr.Unexpected(fmt.Sprintf("failed to %s %s", action, entity), err)
}
