package player

import "errors"

// ErrPlayerNotFound is returned when a lookup or update addresses a
// player absent from the registry.
var ErrPlayerNotFound = errors.New("player not found")
