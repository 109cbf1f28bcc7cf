// Package cba evaluates collective bargaining agreement salary-cap rules:
// cap tier classification, usable exceptions, and trade salary-matching
// limitations, all as pure functions of a team's payroll.
package cba

import (
	"errors"
	"fmt"

	"github.com/hooptools/capledger/internal/models"
)

// ErrInvalidThresholds is returned when a threshold table is not positive
// and strictly increasing.
var ErrInvalidThresholds = errors.New("thresholds must be positive and strictly increasing")

// Thresholds is the four-value ordered threshold table the tier
// classification runs against.
type Thresholds struct {
	SalaryCap   int64 `yaml:"salary_cap" json:"salary_cap"`
	LuxuryTax   int64 `yaml:"luxury_tax" json:"luxury_tax"`
	FirstApron  int64 `yaml:"first_apron" json:"first_apron"`
	SecondApron int64 `yaml:"second_apron" json:"second_apron"`
}

// ExceptionAmounts holds the dollar values of the cap exceptions.
type ExceptionAmounts struct {
	NonTaxpayerMLE int64 `yaml:"non_taxpayer_mle" json:"non_taxpayer_mle"`
	TaxpayerMLE    int64 `yaml:"taxpayer_mle" json:"taxpayer_mle"`
	BiAnnual       int64 `yaml:"bi_annual" json:"bi_annual"`
	RoomException  int64 `yaml:"room_exception" json:"room_exception"`
	MinimumSalary  int64 `yaml:"minimum_salary" json:"minimum_salary"`
}

// Ruleset bundles a threshold table with its exception amounts.
type Ruleset struct {
	Thresholds Thresholds       `yaml:"thresholds" json:"thresholds"`
	Amounts    ExceptionAmounts `yaml:"exceptions" json:"exceptions"`
}

// DefaultThresholds returns the 2023-24 season threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SalaryCap:   136_000_000,
		LuxuryTax:   165_000_000,
		FirstApron:  172_000_000,
		SecondApron: 182_500_000,
	}
}

// DefaultExceptionAmounts returns the 2023-24 season exception values.
func DefaultExceptionAmounts() ExceptionAmounts {
	return ExceptionAmounts{
		NonTaxpayerMLE: 12_400_000,
		TaxpayerMLE:    5_000_000,
		BiAnnual:       4_000_000,
		RoomException:  7_700_000,
		MinimumSalary:  1_000_000,
	}
}

// DefaultRuleset returns the 2023-24 season ruleset.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Thresholds: DefaultThresholds(),
		Amounts:    DefaultExceptionAmounts(),
	}
}

// Validate checks that the table is positive and strictly increasing.
func (t Thresholds) Validate() error {
	if t.SalaryCap <= 0 {
		return fmt.Errorf("salary cap %d: %w", t.SalaryCap, ErrInvalidThresholds)
	}
	if t.LuxuryTax <= t.SalaryCap || t.FirstApron <= t.LuxuryTax || t.SecondApron <= t.FirstApron {
		return fmt.Errorf("%d/%d/%d/%d: %w", t.SalaryCap, t.LuxuryTax, t.FirstApron, t.SecondApron, ErrInvalidThresholds)
	}
	return nil
}

// Classify maps a payroll onto exactly one cap tier. Bands are inclusive
// on the lower bound and exclusive on the upper bound; the last band
// catches everything at or above the second apron.
func (t Thresholds) Classify(payroll int64) models.CapStatus {
	switch {
	case payroll < t.SalaryCap:
		return models.CapStatusUnderCap
	case payroll < t.LuxuryTax:
		return models.CapStatusOverCapUnderTax
	case payroll < t.FirstApron:
		return models.CapStatusLuxuryTaxPayer
	case payroll < t.SecondApron:
		return models.CapStatusOverFirstApron
	default:
		return models.CapStatusOverSecondApron
	}
}

// Exception labels.
const (
	ExceptionRoom           = "Room Exception"
	ExceptionCapSpace       = "Cap Space"
	ExceptionNonTaxpayerMLE = "Non-Taxpayer Mid-Level Exception"
	ExceptionTaxpayerMLE    = "Taxpayer Mid-Level Exception"
	ExceptionBiAnnual       = "Bi-Annual Exception"
	ExceptionMidLevel       = "Mid-Level Exception"
)

// Exception is a named cap carve-out. Usable=false marks an exception a
// team at this tier is explicitly barred from using.
type Exception struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount,omitempty"`
	Usable bool   `json:"usable"`
}

// Describe renders the exception for display.
func (e Exception) Describe() string {
	if !e.Usable {
		return fmt.Sprintf("Cannot use the %s.", e.Label)
	}
	if e.Amount > 0 {
		return fmt.Sprintf("%s: %s", e.Label, FormatDollars(e.Amount))
	}
	return fmt.Sprintf("Can use %s.", e.Label)
}

// AvailableExceptions returns the ordered exception list for a tier.
// usedBAELastYear suppresses the Bi-Annual Exception for teams over the
// cap but under the tax line; it has no effect on any other tier.
func (r Ruleset) AvailableExceptions(status models.CapStatus, usedBAELastYear bool) []Exception {
	switch status {
	case models.CapStatusUnderCap:
		return []Exception{
			{Label: ExceptionRoom, Amount: r.Amounts.RoomException, Usable: true},
			{Label: ExceptionCapSpace, Usable: true},
		}
	case models.CapStatusOverCapUnderTax:
		exceptions := []Exception{
			{Label: ExceptionNonTaxpayerMLE, Amount: r.Amounts.NonTaxpayerMLE, Usable: true},
		}
		if !usedBAELastYear {
			exceptions = append(exceptions, Exception{Label: ExceptionBiAnnual, Amount: r.Amounts.BiAnnual, Usable: true})
		}
		return exceptions
	case models.CapStatusLuxuryTaxPayer:
		return []Exception{
			{Label: ExceptionTaxpayerMLE, Amount: r.Amounts.TaxpayerMLE, Usable: true},
		}
	case models.CapStatusOverFirstApron:
		return []Exception{
			{Label: ExceptionTaxpayerMLE, Usable: false},
		}
	default:
		return []Exception{
			{Label: ExceptionMidLevel, Usable: false},
			{Label: ExceptionBiAnnual, Usable: false},
		}
	}
}

// matchBonus is the extra absolute amount allowed on top of the 125% band
// for teams over the cap but under the first apron.
const matchBonus = 100_000

// TradeRules is the structured form of a tier's trade restrictions.
// MatchPercent bounds the incoming salary relative to outgoing salary;
// MatchBonus is an additional flat allowance on top of that ratio.
type TradeRules struct {
	MatchPercent          int   `json:"match_percent"`
	MatchBonus            int64 `json:"match_bonus"`
	CanSignAndTrade       bool  `json:"can_sign_and_trade"`
	CanAggregateSalaries  bool  `json:"can_aggregate_salaries"`
	CanTradeDistantFirsts bool  `json:"can_trade_distant_firsts"` // first-round picks more than 6 years out
	CanSignBuyouts        bool  `json:"can_sign_buyouts"`
}

// TradeRulesFor derives the structured trade rules for a tier.
func (r Ruleset) TradeRulesFor(status models.CapStatus) TradeRules {
	rules := TradeRules{
		MatchPercent:          125,
		CanSignAndTrade:       true,
		CanAggregateSalaries:  true,
		CanTradeDistantFirsts: true,
		CanSignBuyouts:        true,
	}
	switch status {
	case models.CapStatusUnderCap:
	case models.CapStatusOverCapUnderTax, models.CapStatusLuxuryTaxPayer:
		rules.MatchBonus = matchBonus
	case models.CapStatusOverFirstApron:
		rules.MatchPercent = 110
		rules.CanSignAndTrade = false
	default: // over the second apron
		rules.MatchPercent = 110
		rules.CanSignAndTrade = false
		rules.CanAggregateSalaries = false
		rules.CanTradeDistantFirsts = false
		rules.CanSignBuyouts = false
	}
	return rules
}

// TradeLimitations renders the ordered restriction list for a tier.
func (r Ruleset) TradeLimitations(status models.CapStatus) []string {
	switch status {
	case models.CapStatusUnderCap:
		return []string{
			"Can take back up to 125% of outgoing salary in trades.",
			"Can sign free agents with cap space.",
			fmt.Sprintf("Can use the Room Exception (%s).", FormatDollars(r.Amounts.RoomException)),
		}
	case models.CapStatusOverCapUnderTax:
		return []string{
			fmt.Sprintf("Can use Non-Taxpayer Mid-Level Exception (%s).", FormatDollars(r.Amounts.NonTaxpayerMLE)),
			fmt.Sprintf("Can use Bi-Annual Exception (%s).", FormatDollars(r.Amounts.BiAnnual)),
			"Can sign and trade players.",
			fmt.Sprintf("Can take back up to 125%% + %s of outgoing salary in trades.", FormatDollars(matchBonus)),
		}
	case models.CapStatusLuxuryTaxPayer:
		return []string{
			fmt.Sprintf("Can use Taxpayer Mid-Level Exception (%s).", FormatDollars(r.Amounts.TaxpayerMLE)),
			"Cannot use the Bi-Annual Exception.",
			fmt.Sprintf("Can take back up to 125%% + %s of outgoing salary in trades.", FormatDollars(matchBonus)),
		}
	case models.CapStatusOverFirstApron:
		return []string{
			"Cannot use the Taxpayer Mid-Level Exception.",
			"Cannot use sign-and-trade transactions to acquire players.",
			"Limited to taking back 110% of outgoing salary in trades.",
		}
	default:
		return []string{
			"Cannot aggregate salaries in trades.",
			"Cannot trade future first-round picks more than 6 years out.",
			"Cannot sign buyout players if it takes them further over the apron.",
			"Cannot use the Mid-Level Exception or Bi-Annual Exception.",
			"Limited to taking back 110% of outgoing salary in trades.",
		}
	}
}
