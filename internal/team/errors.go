package team

import "errors"

// ErrPickNotFound is returned when a conveyance addresses a (year, round)
// slot with no pick in the team's inventory.
var ErrPickNotFound = errors.New("draft pick not found")
