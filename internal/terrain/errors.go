// Package terrain holds the error values shared by the height-field packages.
package terrain

import "errors"

var (
	// ErrConfiguration reports construction parameters that can never produce a valid grid.
	ErrConfiguration = errors.New("invalid terrain configuration")

	// ErrOutOfBounds reports a query point that lies outside the tile it was sent to.
	ErrOutOfBounds = errors.New("point outside tile bounds")
)
