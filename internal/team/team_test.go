package team

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/hooptools/capledger/internal/cba"
	"github.com/hooptools/capledger/internal/models"
	"github.com/hooptools/capledger/internal/player"
	"github.com/hooptools/capledger/internal/rosterfeed"
)

const baseYear = 2023

func newTestTeam(name string) *Team {
	registry := player.NewApp(player.NewRepository(), clockwork.NewFakeClock())
	return New(name, cba.DefaultRuleset(), registry, baseYear)
}

func testRows() []rosterfeed.PlayerRow {
	return []rosterfeed.PlayerRow{
		{ID: "jamesle01", Name: "LeBron James", Position: "SF", Salary: 47_600_000, ContractYears: 2},
		{ID: "davisan02", Name: "Anthony Davis", Position: "PF", Salary: 40_600_000, ContractYears: 3},
		{ID: "russeda01", Name: "D'Angelo Russell", Position: "PG", Salary: 17_300_000, ContractYears: 2},
	}
}

func TestReconcileRosterUpdatesPayrollAndStatus(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	result, err := tm.ReconcileRoster(ctx, testRows())
	if err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}

	if !result.Changed {
		t.Error("first reconcile reported unchanged")
	}
	if result.Created != 3 || result.Updated != 0 {
		t.Errorf("Created/Updated = %d/%d, want 3/0", result.Created, result.Updated)
	}

	wantPayroll := int64(47_600_000 + 40_600_000 + 17_300_000)
	if tm.Payroll() != wantPayroll {
		t.Errorf("Payroll() = %d, want %d", tm.Payroll(), wantPayroll)
	}
	if tm.CapStatus() != models.CapStatusUnderCap {
		t.Errorf("CapStatus() = %s, want %s", tm.CapStatus(), models.CapStatusUnderCap)
	}
}

func TestReconcileRosterIdempotentConvergence(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	if _, err := tm.ReconcileRoster(ctx, testRows()); err != nil {
		t.Fatalf("first ReconcileRoster() error = %v", err)
	}
	payroll, status := tm.Payroll(), tm.CapStatus()

	result, err := tm.ReconcileRoster(ctx, testRows())
	if err != nil {
		t.Fatalf("second ReconcileRoster() error = %v", err)
	}
	if result.Changed {
		t.Error("identical second reconcile reported changed")
	}
	if result.Created != 0 || result.Updated != 3 {
		t.Errorf("Created/Updated = %d/%d, want 0/3", result.Created, result.Updated)
	}
	if tm.Payroll() != payroll || tm.CapStatus() != status {
		t.Error("payroll or cap status moved on an unchanged roster")
	}
}

func TestReconcileRosterSalaryChangeRecomputes(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	rows := []rosterfeed.PlayerRow{
		{ID: "star01", Name: "Star One", Position: "SF", Salary: 100_000_000, ContractYears: 1},
	}
	if _, err := tm.ReconcileRoster(ctx, rows); err != nil {
		t.Fatalf("first ReconcileRoster() error = %v", err)
	}
	if tm.CapStatus() != models.CapStatusUnderCap {
		t.Fatalf("CapStatus() = %s, want %s", tm.CapStatus(), models.CapStatusUnderCap)
	}

	// Same player, new deal: membership is identical but payroll doubles.
	rows[0].Salary = 200_000_000
	result, err := tm.ReconcileRoster(ctx, rows)
	if err != nil {
		t.Fatalf("second ReconcileRoster() error = %v", err)
	}
	if !result.Changed {
		t.Error("re-signed contract reported unchanged")
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Errorf("Created/Updated = %d/%d, want 0/1", result.Created, result.Updated)
	}
	if got, want := tm.Payroll(), int64(200_000_000); got != want {
		t.Errorf("Payroll() = %d, want %d", got, want)
	}
	if tm.CapStatus() != models.CapStatusOverSecondApron {
		t.Errorf("CapStatus() = %s, want %s", tm.CapStatus(), models.CapStatusOverSecondApron)
	}
}

func TestReconcileRosterMembershipChange(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	if _, err := tm.ReconcileRoster(ctx, testRows()); err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}

	result, err := tm.ReconcileRoster(ctx, testRows()[:2])
	if err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}
	if !result.Changed {
		t.Error("dropping a player reported unchanged")
	}
	if got, want := tm.Payroll(), int64(47_600_000+40_600_000); got != want {
		t.Errorf("Payroll() = %d, want %d", got, want)
	}
	if len(tm.Roster()) != 2 {
		t.Errorf("roster size = %d, want 2", len(tm.Roster()))
	}
}

func TestReconcileRosterRowFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	rows := testRows()
	rows = append(rows, rosterfeed.PlayerRow{
		// Missing ID fails validation in the registry.
		Name: "No Identifier", Position: "C", Salary: 1_000_000, ContractYears: 1,
	})

	result, err := tm.ReconcileRoster(ctx, rows)
	if err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one row failure", result.Errors)
	}
	if result.Created != 3 {
		t.Errorf("Created = %d, want 3 despite the bad row", result.Created)
	}
	if len(tm.Roster()) != 3 {
		t.Errorf("roster size = %d, want 3", len(tm.Roster()))
	}
}

func TestCapStatusTracksPayrollTier(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Expensive Team")

	rows := []rosterfeed.PlayerRow{
		{ID: "star01", Name: "Star One", Position: "SF", Salary: 95_000_000, ContractYears: 1},
		{ID: "star02", Name: "Star Two", Position: "PG", Salary: 87_500_000, ContractYears: 1},
	}
	if _, err := tm.ReconcileRoster(ctx, rows); err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}
	if tm.CapStatus() != models.CapStatusOverSecondApron {
		t.Errorf("CapStatus() = %s, want %s at payroll %d", tm.CapStatus(), models.CapStatusOverSecondApron, tm.Payroll())
	}
}

func TestSeededDraftPickInventory(t *testing.T) {
	tm := newTestTeam("Boston Celtics")

	picks := tm.ListDraftPicks()
	if len(picks) != futurePickYears*2 {
		t.Fatalf("pick count = %d, want %d", len(picks), futurePickYears*2)
	}
	for i := 1; i < len(picks); i++ {
		prev, cur := picks[i-1], picks[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.Round < prev.Round) {
			t.Fatalf("picks out of order: %s before %s", prev.Describe(), cur.Describe())
		}
	}
	first := picks[0]
	if first.Year != baseYear+1 || first.CurrentTeam != "Boston Celtics" || first.OriginTeam != "Boston Celtics" {
		t.Errorf("unexpected first pick: %s", first.Describe())
	}
}

func TestConveyDraftPick(t *testing.T) {
	tm := newTestTeam("Team A")

	pick, err := tm.ConveyDraftPick(baseYear+2, 1, "Team B", map[string]int{"top": 4})
	if err != nil {
		t.Fatalf("ConveyDraftPick() error = %v", err)
	}
	if pick.CurrentTeam != "Team B" {
		t.Errorf("CurrentTeam = %q, want Team B", pick.CurrentTeam)
	}
	if pick.OriginTeam != "Team A" {
		t.Errorf("OriginTeam = %q, want Team A", pick.OriginTeam)
	}
	if pick.Protections["top"] != 4 {
		t.Errorf("Protections = %v, want top 4", pick.Protections)
	}

	_, err = tm.ConveyDraftPick(baseYear+100, 1, "Team B", nil)
	if !errors.Is(err, ErrPickNotFound) {
		t.Fatalf("ConveyDraftPick() on empty slot error = %v, want %v", err, ErrPickNotFound)
	}
}

func TestAddDraftPickRecordsTradedInPick(t *testing.T) {
	tm := newTestTeam("Team A")

	pick, err := tm.AddDraftPick(baseYear+3, 2, "Team C", nil)
	if err != nil {
		t.Fatalf("AddDraftPick() error = %v", err)
	}
	if pick.CurrentTeam != "Team A" || pick.OriginTeam != "Team C" {
		t.Errorf("ownership = %s/%s, want Team A/Team C", pick.CurrentTeam, pick.OriginTeam)
	}
	if !pick.Traded() {
		t.Error("traded-in pick does not report Traded()")
	}

	if _, err := tm.AddDraftPick(baseYear+3, 3, "Team C", nil); !errors.Is(err, models.ErrInvalidRound) {
		t.Errorf("AddDraftPick(round=3) error = %v, want %v", err, models.ErrInvalidRound)
	}
}

func TestMarkConsumedAndPrune(t *testing.T) {
	tm := newTestTeam("Team A")

	if count := tm.MarkDraftConsumed(baseYear + 1); count != 2 {
		t.Errorf("MarkDraftConsumed() = %d, want 2", count)
	}
	if count := tm.MarkDraftConsumed(baseYear + 1); count != 0 {
		t.Errorf("repeated MarkDraftConsumed() = %d, want 0", count)
	}

	if count := tm.PruneDraftPicks(baseYear + 3); count != 4 {
		t.Errorf("PruneDraftPicks() = %d, want 4", count)
	}
	if len(tm.ListDraftPicks()) != (futurePickYears-2)*2 {
		t.Errorf("pick count after prune = %d", len(tm.ListDraftPicks()))
	}
}

func TestAvailableExceptionsHonorBAEFlag(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Over Cap Team")

	rows := []rosterfeed.PlayerRow{
		{ID: "vet01", Name: "Veteran One", Position: "C", Salary: 140_000_000, ContractYears: 1},
	}
	if _, err := tm.ReconcileRoster(ctx, rows); err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}
	if tm.CapStatus() != models.CapStatusOverCapUnderTax {
		t.Fatalf("CapStatus() = %s, want %s", tm.CapStatus(), models.CapStatusOverCapUnderTax)
	}

	hasBAE := func(exceptions []cba.Exception) bool {
		for _, e := range exceptions {
			if e.Label == cba.ExceptionBiAnnual {
				return true
			}
		}
		return false
	}

	if !hasBAE(tm.AvailableExceptions()) {
		t.Error("Bi-Annual Exception missing with no prior use")
	}
	tm.SetBiAnnualUsed(true)
	if hasBAE(tm.AvailableExceptions()) {
		t.Error("Bi-Annual Exception present despite last-year use")
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	tm := newTestTeam("Los Angeles Lakers")

	if _, err := tm.ReconcileRoster(ctx, testRows()); err != nil {
		t.Fatalf("ReconcileRoster() error = %v", err)
	}

	snap := tm.Snapshot()
	if snap.Name != "Los Angeles Lakers" {
		t.Errorf("Name = %q", snap.Name)
	}
	if snap.CapStatus != models.CapStatusUnderCap || snap.CapStatusLabel != "Under the Cap" {
		t.Errorf("cap status = %s / %q", snap.CapStatus, snap.CapStatusLabel)
	}
	if len(snap.Roster) != 3 {
		t.Errorf("roster entries = %d, want 3", len(snap.Roster))
	}
	if len(snap.DraftPicks) != futurePickYears*2 {
		t.Errorf("pick lines = %d, want %d", len(snap.DraftPicks), futurePickYears*2)
	}
	if len(snap.Exceptions) == 0 || len(snap.TradeLimitations) == 0 {
		t.Error("snapshot missing exception or limitation lists")
	}
	// Roster listing is ordered by player name.
	if snap.Roster[0].Name != "Anthony Davis" {
		t.Errorf("first roster entry = %q, want Anthony Davis", snap.Roster[0].Name)
	}
}
