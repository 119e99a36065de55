package inventory

import "errors"

var (
	// ErrDocumentTooLarge is returned when the encoded document exceeds the
	// configured size cap.
	ErrDocumentTooLarge = errors.New("inventory: document too large")

	// ErrEnumerationFailed is returned when walking the registry panics.
	ErrEnumerationFailed = errors.New("inventory: enumeration failed")

	// ErrSourceRequired is returned when a Router or Publisher is built
	// without an entity source.
	ErrSourceRequired = errors.New("inventory: entity source is required")
)
