package entity

import "strings"

// Entity is the read-only capability every entity kind exposes.
// Implementations must not block or fail.
type Entity interface {
	ObjectID() string
	Name() string
}

// Static is an immutable Entity value.
type Static struct {
	objectID string
	name     string
}

// New returns a Static entity. If objectID is empty it is derived from name
// with GenerateObjectID.
func New(objectID, name string) Static {
	if objectID == "" {
		objectID = GenerateObjectID(name)
	}
	return Static{objectID: objectID, name: name}
}

// ObjectID implements Entity.
func (s Static) ObjectID() string { return s.objectID }

// Name implements Entity.
func (s Static) Name() string { return s.name }

// GenerateObjectID derives an object id from a display name: lower case,
// spaces become underscores, and anything outside [a-z0-9_-] becomes an
// underscore.
//
//	"Relay 1"        -> "relay_1"
//	"Living Room °C" -> "living_room__c"
func GenerateObjectID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
