package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nerrad567/gray-logic-components/internal/entity"
)

// Document is the top-level JSON object served at /components.
type Document struct {
	Components []Record `json:"components"`
}

// Builder accumulates Records in append order and encodes them once.
type Builder struct {
	records  []Record
	maxBytes int
}

// NewBuilder returns an empty Builder. maxBytes caps the encoded document;
// zero or less means no cap.
func NewBuilder(maxBytes int) *Builder {
	return &Builder{records: []Record{}, maxBytes: maxBytes}
}

// Add appends r to the document.
func (b *Builder) Add(r Record) {
	b.records = append(b.records, r)
}

// Len returns the number of records added so far.
func (b *Builder) Len() int {
	return len(b.records)
}

// Finalize encodes the document. An empty Builder yields {"components":[]}.
func (b *Builder) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Document{Components: b.records}); err != nil {
		return nil, fmt.Errorf("encoding components document: %w", err)
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if b.maxBytes > 0 && len(out) > b.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrDocumentTooLarge, len(out), b.maxBytes)
	}
	return out, nil
}

// Snapshot is the result of one full walk of a Source.
type Snapshot struct {
	Body   []byte
	Counts map[string]int // entities per kind, supported kinds only
	Total  int
}

// Render walks source once and returns the encoded document with per-kind
// counts. A panic raised by the source is returned as ErrEnumerationFailed.
func Render(source Source, maxBytes int) (snap Snapshot, err error) {
	if source == nil {
		return Snapshot{}, ErrSourceRequired
	}

	defer func() {
		if rec := recover(); rec != nil {
			snap = Snapshot{}
			err = fmt.Errorf("%w: %v", ErrEnumerationFailed, rec)
		}
	}()

	b := NewBuilder(maxBytes)
	counts := make(map[string]int)
	it := NewIterator(source, func(kind entity.Kind, e entity.Entity) bool {
		b.Add(Project(kind, e))
		counts[kind.String()]++
		return true
	})
	for _, k := range it.kinds {
		counts[k.String()] = 0
	}

	total := it.Run()
	body, err := b.Finalize()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Body: body, Counts: counts, Total: total}, nil
}
