// Package events publishes roster-change notifications for downstream
// consumers (presentation, alerting). The core never depends on a broker
// being reachable; a Noop publisher stands in when none is configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// TeamUpdated is emitted after a team's roster reconcile produced a
// membership change.
type TeamUpdated struct {
	Team      string    `json:"team"`
	Payroll   int64     `json:"payroll"`
	CapStatus string    `json:"cap_status"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	At        time.Time `json:"at"`
}

// Publisher publishes roster-change events.
type Publisher interface {
	PublishTeamUpdated(ctx context.Context, event TeamUpdated) error
}

// NATSPublisher publishes events to a NATS subject.
type NATSPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// NewNATSPublisher creates a publisher on an established NATS connection.
func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	return &NATSPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
}

// PublishTeamUpdated publishes the event as a json envelope on
// "<prefix>.team.updated".
func (p *NATSPublisher) PublishTeamUpdated(ctx context.Context, event TeamUpdated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := fmt.Sprintf("%s.team.updated", p.subjectPrefix)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	log.Debug().Str("subject", subject).Str("team", event.Team).Msg("published team update")
	return nil
}

// NoopPublisher drops events, logging them at debug level.
type NoopPublisher struct{}

// PublishTeamUpdated logs the event and discards it.
func (NoopPublisher) PublishTeamUpdated(ctx context.Context, event TeamUpdated) error {
	log.Debug().
		Str("team", event.Team).
		Int64("payroll", event.Payroll).
		Str("cap_status", event.CapStatus).
		Msg("team updated (no publisher configured)")
	return nil
}
