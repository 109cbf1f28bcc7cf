package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hooptools/capledger/internal/events"
	"github.com/hooptools/capledger/internal/league"
	"github.com/hooptools/capledger/internal/player"
	"github.com/hooptools/capledger/internal/rosterfeed"
	"github.com/hooptools/capledger/internal/team"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	config, err := loadConfig(configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("falling back to default config")
		config = defaultConfig()
	}

	// Event publishing is optional; without a broker the ledger still runs.
	var publisher events.Publisher = events.NoopPublisher{}
	if natsURL := getEnv("NATS_URL", ""); natsURL != "" {
		conn, err := nats.Connect(natsURL)
		if err != nil {
			log.Fatal().Err(err).Str("nats_url", natsURL).Msg("failed to connect to NATS")
		}
		defer conn.Close()
		publisher = events.NewNATSPublisher(conn, "capledger")
		log.Info().Str("nats_url", natsURL).Msg("publishing team updates to NATS")
	}

	clock := clockwork.NewRealClock()
	registry := player.NewApp(player.NewRepository(), clock)
	source := rosterfeed.NewStaticSource()
	seedDemoRosters(source)

	teams := league.NewApp(source, publisher, clock)
	for _, name := range config.Teams {
		teams.AddTeam(team.New(name, config.CBA, registry, config.Season.Year))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweep := teams.RefreshAll(ctx)
	for _, t := range teams.ListTeams() {
		snap := t.Snapshot()
		log.Info().
			Str("team", snap.Name).
			Int64("payroll", snap.Payroll).
			Str("cap_status", snap.CapStatusLabel).
			Strs("exceptions", snap.Exceptions).
			Int("roster", len(snap.Roster)).
			Int("picks", len(snap.DraftPicks)).
			Msg("team snapshot")
	}
	if len(sweep.Failed) > 0 {
		for _, failure := range sweep.Failed {
			log.Warn().Err(failure.Err).Str("team", failure.Team).Msg("team refresh failed")
		}
	}

	interval, err := config.RefreshInterval()
	if err != nil {
		log.Fatal().Err(err).Msg("bad refresh configuration")
	}
	if interval <= 0 {
		return
	}

	refresher := league.NewRefresher(teams, clock, interval)
	if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("refresher stopped")
	}
}

// seedDemoRosters installs a small static feed so the ledger has data to
// reconcile when no external collaborator is wired in.
func seedDemoRosters(source *rosterfeed.StaticSource) {
	boolPtr := func(b bool) *bool { return &b }

	source.SetRoster("Los Angeles Lakers", []rosterfeed.PlayerRow{
		{ID: "jamesle01", Name: "LeBron James", Position: "SF", Salary: 47_600_000, ContractYears: 2},
		{ID: "davisan02", Name: "Anthony Davis", Position: "PF", Salary: 40_600_000, ContractYears: 3},
		{ID: "russeda01", Name: "D'Angelo Russell", Position: "PG", Salary: 17_300_000, ContractYears: 2,
			PlayerOptions: map[int]bool{1: true}},
	})
	source.SetRoster("Boston Celtics", []rosterfeed.PlayerRow{
		{ID: "tatumja01", Name: "Jayson Tatum", Position: "SF", Salary: 32_600_000, ContractYears: 2},
		{ID: "brownja02", Name: "Jaylen Brown", Position: "SG", Salary: 49_700_000, ContractYears: 5},
		{ID: "porzikr01", Name: "Kristaps Porzingis", Position: "C", Salary: 36_000_000, ContractYears: 2,
			Tradeable: boolPtr(false)},
	})
}
