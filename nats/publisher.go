package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"threecard.com/server/game"
)

var natsLogger = log.With().Str("logger_name", "nats::publisher").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventPublisher mirrors the table log to NATS. Each entry goes to the
// subject of the match it belongs to.
type EventPublisher struct {
	natsConn *natsgo.Conn
	prefix   string
	ownsConn bool
}

// Connect dials the NATS server. The returned publisher closes the
// connection when it is closed.
func Connect(natsURL string, prefix string) (*EventPublisher, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Error connecting to NATS server [%s]", natsURL)
	}
	natsLogger.Info().Msgf("Connected to NATS server %s", natsURL)
	p := NewEventPublisher(nc, prefix)
	p.ownsConn = true
	return p, nil
}

func NewEventPublisher(nc *natsgo.Conn, prefix string) *EventPublisher {
	return &EventPublisher{
		natsConn: nc,
		prefix:   prefix,
	}
}

func (p *EventPublisher) Publish(entry game.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "Unable to encode log entry")
	}
	subject := GetMatchLogSubject(p.prefix, entry.MatchID)
	err = p.natsConn.Publish(subject, data)
	if err != nil {
		return errors.Wrapf(err, "Unable to publish to %s", subject)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.ownsConn {
		return nil
	}
	err := p.natsConn.Drain()
	if err != nil {
		p.natsConn.Close()
		return errors.Wrap(err, "Error while draining NATS connection")
	}
	return nil
}
