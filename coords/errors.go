package coords

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches one of
// ErrCoordinate or ErrInvalidValue with errors.Is; the narrower sentinels
// below wrap one of the two.
var (
	ErrCoordinate   = errors.New("coordinate error")
	ErrInvalidValue = errors.New("invalid value")
)

var (
	ErrAxisNotFound  = fmt.Errorf("%w: axis not found", ErrCoordinate)
	ErrDuplicateAxis = fmt.Errorf("%w: duplicated axes", ErrCoordinate)
	ErrUndefinedAxis = fmt.Errorf("%w: undefined axis", ErrCoordinate)
	ErrDimension     = fmt.Errorf("%w: dimensionality mismatch", ErrCoordinate)

	ErrLabelNotFound  = fmt.Errorf("%w: label not found", ErrInvalidValue)
	ErrDuplicateLabel = fmt.Errorf("%w: labels have duplicates", ErrInvalidValue)
	ErrOutOfRange     = fmt.Errorf("%w: index out of range", ErrInvalidValue)
)
