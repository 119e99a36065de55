package inventory

import "github.com/nerrad567/gray-logic-components/internal/entity"

// Record is one element of the components array. Field order is the wire
// order.
type Record struct {
	Type     string `json:"type"`
	ObjectID string `json:"object_id"`
	Name     string `json:"name"`
}

// Project turns an entity of the given kind into its Record. Strings are
// copied verbatim; escaping is the encoder's job.
func Project(kind entity.Kind, e entity.Entity) Record {
	return Record{
		Type:     kind.String(),
		ObjectID: e.ObjectID(),
		Name:     e.Name(),
	}
}
