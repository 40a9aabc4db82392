package recording

import "errors"

// Sentinel error kinds for decoding. These allow errors.Is from callers.
var (
	ErrDecode           = errors.New("decode recording failed")
	ErrUnknownOperation = errors.New("unknown operation encoding")
)
