package inventory

import (
	"testing"

	"github.com/nerrad567/gray-logic-components/internal/entity"
)

type seed struct {
	kind     entity.Kind
	objectID string
	name     string
}

// newRegistry builds a registry from seeds, in order. Only kinds present in
// every build are used so the tests pass with and without the minimal tag.
func newRegistry(t *testing.T, seeds ...seed) *entity.Registry {
	t.Helper()
	reg := entity.NewRegistry()
	for _, s := range seeds {
		if err := reg.Register(s.kind, entity.New(s.objectID, s.name)); err != nil {
			t.Fatalf("Register(%s, %s) error = %v", s.kind, s.objectID, err)
		}
	}
	return reg
}

// panicSource panics on the first lookup.
type panicSource struct{}

func (panicSource) Entities(entity.Kind) []entity.Entity { panic("registry corrupted") }

// countingSource records how many times each kind was requested.
type countingSource struct {
	inner Source
	calls map[entity.Kind]int
}

func (c *countingSource) Entities(kind entity.Kind) []entity.Entity {
	if c.calls == nil {
		c.calls = make(map[entity.Kind]int)
	}
	c.calls[kind]++
	return c.inner.Entities(kind)
}

// recordingLogger captures log calls by level.
type recordingLogger struct {
	debug, info, warn, errs []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.info = append(l.info, msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.warn = append(l.warn, msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.errs = append(l.errs, msg) }
