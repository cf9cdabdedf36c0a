package meshcode

import (
	"errors"
	"fmt"
)

// Field names reported by OutOfRangeError.
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldLevel     = "level"
)

// ErrInvalidCode is returned when a mesh code cannot be decoded.
var ErrInvalidCode = errors.New("meshcode: invalid mesh code")

// OutOfRangeError reports an input outside its accepted range.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	if e.Field == FieldLevel {
		return fmt.Sprintf("meshcode: %s %d out of range [%d, %d]", e.Field, int(e.Value), int(e.Min), int(e.Max))
	}
	return fmt.Sprintf("meshcode: %s %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// IsOutOfRange reports whether err is or wraps an *OutOfRangeError.
func IsOutOfRange(err error) bool {
	var target *OutOfRangeError
	return errors.As(err, &target)
}
