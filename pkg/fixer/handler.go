package fixer

import (
	"slices"
	"sync"

	"github.com/yaklabco/phpfix/pkg/fix"
	"github.com/yaklabco/phpfix/pkg/phpast"
)

// Handler computes fix edits for one issue instance in one parsed file.
//
// Fix returns the candidate edits and true when a fix is available. Edits
// are byte ranges into the snapshot's original content. Returning false is
// the normal "no fix available" outcome, never an error: unsupported
// constructs are declined, not failed.
type Handler interface {
	// Checks returns the issue kinds this handler fixes.
	Checks() []CheckName

	// Fix computes the edits for issue against the parsed file.
	Fix(snap *phpast.FileSnapshot, issue Issue) ([]fix.TextEdit, bool)
}

// Registry maps check names to their fix handlers.
// It is the dispatch table consulted once per issue; checks with no entry
// are skipped without comment.
type Registry struct {
	mu      sync.RWMutex
	byCheck map[CheckName]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{byCheck: make(map[CheckName]Handler)}
}

// Register adds a handler under every check it declares.
// A handler registered for an already-claimed check replaces the old one.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, check := range h.Checks() {
		r.byCheck[check] = h
	}
}

// Lookup returns the handler for a check, if one is registered.
func (r *Registry) Lookup(check CheckName) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byCheck[check]
	return h, ok
}

// Checks returns all fixable check names in sorted order.
func (r *Registry) Checks() []CheckName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CheckName, 0, len(r.byCheck))
	for check := range r.byCheck {
		result = append(result, check)
	}
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in handlers.
// Handlers register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for handler registration
var DefaultRegistry = NewRegistry()
