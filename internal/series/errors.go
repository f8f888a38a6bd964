package series

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed, empty or under-length series.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateInput marks a constant series. It wraps ErrInvalidInput and is recoverable where a fallback exists.
	ErrDegenerateInput = fmt.Errorf("%w: degenerate series", ErrInvalidInput)
)
