package models

import "errors"

var (
	// ErrOptionConflict is returned when a contract year carries both a
	// team option and a player option.
	ErrOptionConflict = errors.New("year has both a team option and a player option")

	// ErrSalaryYears is returned when the salary schedule length does not
	// match the contract duration.
	ErrSalaryYears = errors.New("salary schedule length does not match duration")

	// ErrNegativeSalary is returned when a salary amount is negative.
	ErrNegativeSalary = errors.New("salary amounts must be non-negative")

	// ErrInvalidDuration is returned when a contract duration is not positive.
	ErrInvalidDuration = errors.New("contract duration must be positive")

	// ErrInvalidRound is returned when a draft pick round is not 1 or 2.
	ErrInvalidRound = errors.New("draft round must be 1 or 2")
)
