package entity

import "errors"

// Domain errors for the entity package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, entity.ErrUnsupportedKind) {
//	    // kind was compiled out of this build
//	}
var (
	// ErrUnsupportedKind is returned when registering an entity whose kind is
	// not compiled into this binary.
	ErrUnsupportedKind = errors.New("entity: unsupported kind")

	// ErrEntityExists is returned when (kind, object_id) is already registered.
	ErrEntityExists = errors.New("entity: already exists")

	// ErrInvalidEntity is returned for a nil entity or an empty object id.
	ErrInvalidEntity = errors.New("entity: invalid")

	// ErrEntityNotFound is returned when deleting an unknown entity.
	ErrEntityNotFound = errors.New("entity: not found")
)
