package inventory

import "github.com/nerrad567/gray-logic-components/internal/entity"

// Source supplies the entities of one kind in registration order.
// *entity.Registry satisfies it.
type Source interface {
	Entities(kind entity.Kind) []entity.Entity
}

// State is the position of an Iterator's walk.
type State int

const (
	// StateIdle is the state before Begin.
	StateIdle State = iota
	// StateRunning means entities may remain.
	StateRunning
	// StateDone is terminal: no further entities are produced.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Visitor receives one entity together with its kind. Returning false stops
// the walk; the Iterator moves straight to StateDone.
type Visitor func(kind entity.Kind, e entity.Entity) bool

// Iterator walks every supported kind of a Source, visiting one entity per
// Advance.
//
// An Iterator is single-use and not safe for concurrent use. Each kind is
// snapshotted when the walk reaches it, so entities registered into a kind
// already passed are not seen.
type Iterator struct {
	source Source
	visit  Visitor
	onEnd  func()
	kinds  []entity.Kind

	state   State
	kindIdx int
	pos     int
	current []entity.Entity
	visited int
}

// NewIterator returns an idle Iterator over the supported kinds of source.
func NewIterator(source Source, visit Visitor) *Iterator {
	return &Iterator{
		source: source,
		visit:  visit,
		kinds:  entity.SupportedKinds(),
	}
}

// OnEnd registers fn to run once when the Iterator reaches StateDone,
// whether by exhaustion or because the Visitor stopped it.
func (it *Iterator) OnEnd(fn func()) {
	it.onEnd = fn
}

// Begin positions the cursor before the first entity of the first kind.
// It restarts a running walk and does nothing once the walk is done.
func (it *Iterator) Begin() {
	if it.state == StateDone {
		return
	}
	it.state = StateRunning
	it.kindIdx = 0
	it.pos = 0
	it.current = nil
	it.visited = 0
	if len(it.kinds) > 0 {
		it.current = it.source.Entities(it.kinds[0])
	}
}

// Advance visits the next entity, skipping kinds with no entities. When the
// last entity has been visited it moves to StateDone. Advance on an idle
// Iterator calls Begin first.
func (it *Iterator) Advance() {
	switch it.state {
	case StateDone:
		return
	case StateIdle:
		it.Begin()
	}

	for it.pos >= len(it.current) {
		it.kindIdx++
		if it.kindIdx >= len(it.kinds) {
			it.finish()
			return
		}
		it.pos = 0
		it.current = it.source.Entities(it.kinds[it.kindIdx])
	}

	e := it.current[it.pos]
	it.pos++
	it.visited++
	if it.visit != nil && !it.visit(it.kinds[it.kindIdx], e) {
		it.finish()
	}
}

// State reports the walk position. Callers drive the walk with:
//
//	it.Begin()
//	for it.State() != StateDone {
//		it.Advance()
//	}
func (it *Iterator) State() State {
	return it.state
}

// Visited returns how many entities have been handed to the Visitor.
func (it *Iterator) Visited() int {
	return it.visited
}

// Run drives the walk from Begin to StateDone and returns Visited.
func (it *Iterator) Run() int {
	it.Begin()
	for it.state != StateDone {
		it.Advance()
	}
	return it.visited
}

func (it *Iterator) finish() {
	it.state = StateDone
	it.current = nil
	if it.onEnd != nil {
		it.onEnd()
	}
}
