package lookup

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLoadTable = errors.New("load names table failed")
)
