package league

import "errors"

// ErrTeamNotFound is returned when a lookup addresses a team absent from
// the league registry.
var ErrTeamNotFound = errors.New("team not found")
