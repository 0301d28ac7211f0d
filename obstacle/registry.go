// Package obstacle keeps track of which physics bodies belong to which
// obstacle category so contact handlers can classify an opaque body.
package obstacle

import "github.com/milk9111/penguin/body"

// Category names a group of obstacles.
type Category string

const (
	Hazard Category = "spikes"
	Enemy  Category = "snowman"
)

type key struct {
	category Category
	id       body.ID
}

// Registry is a membership set of (category, body) pairs. Entries are added
// while a level is built and never removed; lookups always come from a fresh
// contact so stale entries are harmless.
type Registry struct {
	entries map[key]struct{}
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[key]struct{})}
}

// Register adds id to category. Registering twice is a no-op, as is
// registering on a nil Registry.
func (r *Registry) Register(category Category, id body.ID) {
	if r == nil {
		return
	}
	if r.entries == nil {
		r.entries = make(map[key]struct{})
	}
	r.entries[key{category: category, id: id}] = struct{}{}
}

// Contains reports whether id was registered under category.
func (r *Registry) Contains(category Category, id body.ID) bool {
	if r == nil {
		return false
	}
	_, ok := r.entries[key{category: category, id: id}]
	return ok
}

// Classify reports whether b, or any body on its ownership chain up to the
// root, was registered under category.
func (r *Registry) Classify(category Category, b body.Body) bool {
	for b != nil {
		if r.Contains(category, b.ID()) {
			return true
		}
		p, ok := b.Parent()
		if !ok {
			return false
		}
		b = p
	}
	return false
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
