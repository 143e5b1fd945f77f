package notify

import (
	"context"
	"encoding/json"
	"fmt"

	nats "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSRelay forwards every bus notification to a NATS subject so other
// dashboard instances or tools can observe them.
type NATSRelay struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// ConnectNATSRelay dials url and returns a relay publishing to subject
func ConnectNATSRelay(url, subject string, logger zerolog.Logger) (*NATSRelay, error) {
	conn, err := nats.Connect(url, nats.Name("mentoraid-notifications"))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSRelay{conn: conn, subject: subject, logger: logger}, nil
}

// Run relays notifications from bus until ctx is done or the bus closes
func (r *NATSRelay) Run(ctx context.Context, bus *Bus) {
	sub := bus.Subscribe(64)
	defer sub.Close()

	r.logger.Info().Str("subject", r.subject).Msg("NATS notification relay started")
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-sub.C():
			if !ok {
				return
			}
			if err := r.publish(n); err != nil {
				r.logger.Warn().Err(err).Str("notificationID", n.ID).Msg("Failed to relay notification")
			}
		}
	}
}

func (r *NATSRelay) publish(n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	msg := &nats.Msg{Subject: r.subject, Data: data, Header: nats.Header{}}
	msg.Header.Set("Notification-Type", string(n.Type))
	return r.conn.PublishMsg(msg)
}

// Close drains pending messages and closes the connection
func (r *NATSRelay) Close() error {
	return r.conn.Drain()
}
