package match

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrMalformedHeader marks a parsed header the map name cannot be derived from.
	ErrMalformedHeader = errors.New("malformed recording header")
)
