package core

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrTileOccupied       = errors.New("tile already occupied")
	ErrTileEmpty          = errors.New("no unit on tile")
	ErrNotTraversable     = errors.New("tile is not traversable")
	ErrUnknownTeam        = errors.New("unknown team")
	ErrUnknownClass       = errors.New("unknown unit class")
)
