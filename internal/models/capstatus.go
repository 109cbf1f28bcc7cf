package models

// CapStatus classifies a team's payroll against the league salary thresholds.
// The five tiers are ordered; a higher tier always carries stricter
// transaction rules than the one below it.
type CapStatus string

const (
	CapStatusUnderCap        CapStatus = "UNDER_THE_CAP"
	CapStatusOverCapUnderTax CapStatus = "OVER_THE_CAP_UNDER_LUXURY_TAX"
	CapStatusLuxuryTaxPayer  CapStatus = "LUXURY_TAX_PAYER"
	CapStatusOverFirstApron  CapStatus = "OVER_FIRST_APRON"
	CapStatusOverSecondApron CapStatus = "OVER_SECOND_APRON"
)

var capStatusOrder = map[CapStatus]int{
	CapStatusUnderCap:        0,
	CapStatusOverCapUnderTax: 1,
	CapStatusLuxuryTaxPayer:  2,
	CapStatusOverFirstApron:  3,
	CapStatusOverSecondApron: 4,
}

var capStatusLabels = map[CapStatus]string{
	CapStatusUnderCap:        "Under the Cap",
	CapStatusOverCapUnderTax: "Over the Cap, Under Luxury Tax Line",
	CapStatusLuxuryTaxPayer:  "Luxury Tax Payer, Under First Apron",
	CapStatusOverFirstApron:  "Over First Apron, Under Second Apron",
	CapStatusOverSecondApron: "Over Second Apron",
}

// Rank returns the position of the status in the tier ordering, 0 being
// the least restricted. Unknown statuses rank below every real tier.
func (s CapStatus) Rank() int {
	rank, ok := capStatusOrder[s]
	if !ok {
		return -1
	}
	return rank
}

// Label returns the human-readable form of the status.
func (s CapStatus) Label() string {
	if label, ok := capStatusLabels[s]; ok {
		return label
	}
	return string(s)
}
