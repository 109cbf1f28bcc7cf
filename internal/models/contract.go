package models

import (
	"fmt"
	"time"
)

// ContractTerms represents a request to sign a new contract.
type ContractTerms struct {
	Duration      int              `json:"duration"`
	SalaryPerYear []int64          `json:"salary_per_year"`
	TeamOptions   map[int]bool     `json:"team_options,omitempty"`
	PlayerOptions map[int]bool     `json:"player_options,omitempty"`
	Incentives    map[string]int64 `json:"incentives,omitempty"`
}

// Contract represents a player's multi-year compensation and option
// structure. A contract is never mutated after signing; re-signing a player
// installs a new Contract in its place.
type Contract struct {
	Duration      int              `json:"duration"`
	SalaryPerYear []int64          `json:"salary_per_year"`
	TeamOptions   map[int]bool     `json:"team_options,omitempty"`
	PlayerOptions map[int]bool     `json:"player_options,omitempty"`
	Incentives    map[string]int64 `json:"incentives,omitempty"`
	SignedAt      time.Time        `json:"signed_at"`
}

// NewContract validates terms and builds a contract signed at signedAt.
// A zero signedAt defaults to the current time. The salary schedule must
// match the duration, no salary may be negative, and no year may carry
// both a team option and a player option.
func NewContract(terms ContractTerms, signedAt time.Time) (*Contract, error) {
	if signedAt.IsZero() {
		signedAt = time.Now()
	}
	if terms.Duration <= 0 {
		return nil, fmt.Errorf("duration %d: %w", terms.Duration, ErrInvalidDuration)
	}
	if len(terms.SalaryPerYear) != terms.Duration {
		return nil, fmt.Errorf("%d salaries for %d years: %w", len(terms.SalaryPerYear), terms.Duration, ErrSalaryYears)
	}
	for year, salary := range terms.SalaryPerYear {
		if salary < 0 {
			return nil, fmt.Errorf("year %d salary %d: %w", year, salary, ErrNegativeSalary)
		}
	}
	for year := range terms.TeamOptions {
		if _, ok := terms.PlayerOptions[year]; ok {
			return nil, fmt.Errorf("year %d: %w", year, ErrOptionConflict)
		}
	}

	c := &Contract{
		Duration:      terms.Duration,
		SalaryPerYear: append([]int64(nil), terms.SalaryPerYear...),
		SignedAt:      signedAt,
	}
	if len(terms.TeamOptions) > 0 {
		c.TeamOptions = make(map[int]bool, len(terms.TeamOptions))
		for year, opt := range terms.TeamOptions {
			c.TeamOptions[year] = opt
		}
	}
	if len(terms.PlayerOptions) > 0 {
		c.PlayerOptions = make(map[int]bool, len(terms.PlayerOptions))
		for year, opt := range terms.PlayerOptions {
			c.PlayerOptions[year] = opt
		}
	}
	if len(terms.Incentives) > 0 {
		c.Incentives = make(map[string]int64, len(terms.Incentives))
		for label, amount := range terms.Incentives {
			c.Incentives[label] = amount
		}
	}
	return c, nil
}

// TotalValue returns the sum of all scheduled salaries.
func (c *Contract) TotalValue() int64 {
	var total int64
	for _, salary := range c.SalaryPerYear {
		total += salary
	}
	return total
}

// CurrentSalary returns the salary owed for the current (first remaining)
// contract year. This is the contract's contribution to team payroll.
func (c *Contract) CurrentSalary() int64 {
	if len(c.SalaryPerYear) == 0 {
		return 0
	}
	return c.SalaryPerYear[0]
}
