package domain

import "errors"

// ErrUnsupportedVersion is returned when a stored record carries a schema
// version this build cannot read.
var ErrUnsupportedVersion = errors.New("unsupported record version")
