// Package handlers exposes the core's command and query surface over
// HTTP. Every failure comes back as a JSON error envelope; the core's
// sentinel errors are mapped to status codes here, not inside the core.
package handlers

import (
	"go-tindahan/internal/store"
)

// Handler carries the injected directory instead of package globals, so
// tests can spin up an isolated instance.
type Handler struct {
	Dir *store.Directory
}

func New(dir *store.Directory) *Handler {
	return &Handler{Dir: dir}
}
