package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry holds the live entities of every supported kind, in registration
// order within each kind.
//
// Entities are owned by whoever registered them; the registry only keeps
// references. All public methods are thread-safe.
type Registry struct {
	mu     sync.RWMutex
	byKind map[Kind][]Entity
	ids    map[Kind]map[string]struct{}
	logger Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[Kind][]Entity),
		ids:    make(map[Kind]map[string]struct{}),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Register appends e to the entities of kind.
//
// It returns ErrUnsupportedKind if kind is compiled out, ErrInvalidEntity for
// a nil entity or empty object id, and ErrEntityExists for a duplicate
// object id within the kind.
func (r *Registry) Register(kind Kind, e Entity) error {
	if !kind.IsSupported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	if e == nil || e.ObjectID() == "" {
		return ErrInvalidEntity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, ok := r.ids[kind]
	if !ok {
		ids = make(map[string]struct{})
		r.ids[kind] = ids
	}
	if _, dup := ids[e.ObjectID()]; dup {
		return fmt.Errorf("%w: %s/%s", ErrEntityExists, kind, e.ObjectID())
	}

	ids[e.ObjectID()] = struct{}{}
	r.byKind[kind] = append(r.byKind[kind], e)

	r.logger.Debug("entity registered", "kind", kind, "object_id", e.ObjectID())
	return nil
}

// Unregister removes the entity with objectID from kind, preserving the
// order of the rest.
func (r *Registry) Unregister(kind Kind, objectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[kind][objectID]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrEntityNotFound, kind, objectID)
	}
	delete(r.ids[kind], objectID)

	list := r.byKind[kind]
	for i, e := range list {
		if e.ObjectID() == objectID {
			r.byKind[kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}

	r.logger.Debug("entity unregistered", "kind", kind, "object_id", objectID)
	return nil
}

// Entities returns a snapshot of the entities of kind in registration order.
// The slice is safe to iterate while other goroutines register entities.
func (r *Registry) Entities(kind Kind) []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byKind[kind]
	if len(list) == 0 {
		return nil
	}
	out := make([]Entity, len(list))
	copy(out, list)
	return out
}

// Count returns the total number of registered entities.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.byKind {
		n += len(list)
	}
	return n
}

// CountByKind returns the number of registered entities per supported kind.
// Kinds with no entities are reported as zero.
func (r *Registry) CountByKind() map[Kind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[Kind]int, len(compiledKinds))
	for _, k := range compiledKinds {
		counts[k] = len(r.byKind[k])
	}
	return counts
}

// Load registers every stored entity from repo.
//
// Rows whose kind is compiled out of this build are skipped, as are rows
// already registered. It returns the number of entities registered.
func (r *Registry) Load(ctx context.Context, repo Repository) (int, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading entities: %w", err)
	}

	loaded := 0
	for _, rec := range records {
		err := r.Register(rec.Kind, New(rec.ObjectID, rec.Name))
		switch {
		case err == nil:
			loaded++
		case errors.Is(err, ErrUnsupportedKind):
			r.logger.Debug("skipping entity of compiled-out kind", "kind", rec.Kind, "object_id", rec.ObjectID)
		case errors.Is(err, ErrEntityExists):
			// Already registered by another source
		default:
			return loaded, fmt.Errorf("registering %s/%s: %w", rec.Kind, rec.ObjectID, err)
		}
	}

	r.logger.Info("entity registry loaded", "loaded", loaded, "stored", len(records))
	return loaded, nil
}
