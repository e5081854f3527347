package spritemesh

import "errors"

var (
	// ErrInvalidConfig is returned for options that cannot describe a tile
	// or a polygon budget. Values are never clamped into range.
	ErrInvalidConfig = errors.New("spritemesh: invalid configuration")

	// ErrDegenerateGeometry reports a silhouette whose hull, simplified
	// polygon or triangulation collapsed (collinear or zero area). Callers
	// usually fall back to a full quad.
	ErrDegenerateGeometry = errors.New("spritemesh: degenerate geometry")

	// ErrZeroArea is returned when an area ratio would divide by a zero
	// tile area.
	ErrZeroArea = errors.New("spritemesh: zero tile area")
)
