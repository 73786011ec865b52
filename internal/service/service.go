// Package service implements the shelfnotes use cases on top of the store.
package service

import (
	"errors"

	"github.com/listenupapp/shelfnotes/internal/domain"
	domainerrors "github.com/listenupapp/shelfnotes/internal/errors"
	"github.com/listenupapp/shelfnotes/internal/store"
	"github.com/listenupapp/shelfnotes/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// requireViewer fails with Unauthorized for anonymous callers.
func requireViewer(v *domain.Viewer) error {
	if !v.Authenticated() {
		return domainerrors.Unauthorized("authentication required")
	}
	return nil
}

// isNotFound reports whether err is the store's not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
