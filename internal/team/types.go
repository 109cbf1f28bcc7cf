package team

import (
	"github.com/hooptools/capledger/internal/models"
)

// Result represents the outcome of a roster reconcile. Changed is false
// when the candidate roster matched the current one by membership, in
// which case payroll and cap status were left untouched.
type Result struct {
	Team           string           `json:"team"`
	Changed        bool             `json:"changed"`
	TotalProcessed int              `json:"total_processed"`
	Created        int              `json:"created"`
	Updated        int              `json:"updated"`
	Errors         []error          `json:"errors,omitempty"`
	Payroll        int64            `json:"payroll"`
	CapStatus      models.CapStatus `json:"cap_status"`
}

// RosterEntry is one roster line in a team snapshot.
type RosterEntry struct {
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	Salary       int64   `json:"salary"`
	Tradeable    bool    `json:"tradeable"`
	InjuryStatus *string `json:"injury_status,omitempty"`
}

// Snapshot is the plain-data view of a team handed to the presentation
// layer.
type Snapshot struct {
	Name             string           `json:"name"`
	Payroll          int64            `json:"payroll"`
	CapStatus        models.CapStatus `json:"cap_status"`
	CapStatusLabel   string           `json:"cap_status_label"`
	Exceptions       []string         `json:"exceptions"`
	TradeLimitations []string         `json:"trade_limitations"`
	Roster           []RosterEntry    `json:"roster"`
	DraftPicks       []string         `json:"draft_picks"`
}
