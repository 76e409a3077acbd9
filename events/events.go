package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	AssignmentCreated = "assignments.created"
	AssignmentUpdated = "assignments.updated"
	AssignmentDeleted = "assignments.deleted"
)

// AssignmentEvent is published after an assignment write has been persisted.
type AssignmentEvent struct {
	Subject      string    `json:"-"`
	AssignmentID string    `json:"assignment_id"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	ProjectID    string    `json:"project_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt AssignmentEvent) error
	Close()
}

type NATSPublisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// Connect dials the NATS server at url. An unreachable server does not fail
// startup: the connection keeps retrying in the background and publishes are
// buffered until it is up.
func Connect(url string, logger *zap.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("project-dashboard"),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
		nats.ConnectHandler(func(c *nats.Conn) {
			logger.Info("nats connected", zap.String("url", c.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("events: connect to %s: %w", url, err)
	}
	return &NATSPublisher{nc: nc, logger: logger}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, evt AssignmentEvent) error {
	data, err := Encode(evt)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(evt.Subject, data); err != nil {
		return fmt.Errorf("events: publish %s: %w", evt.Subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", evt.Subject), zap.String("assignment_id", evt.AssignmentID))
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if !p.nc.IsConnected() {
		p.nc.Close()
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("nats drain failed", zap.Error(err))
		p.nc.Close()
	}
}

func Encode(evt AssignmentEvent) ([]byte, error) {
	if evt.Subject == "" {
		return nil, fmt.Errorf("events: missing subject")
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("events: encode %s: %w", evt.Subject, err)
	}
	return data, nil
}

// Noop discards events. It is used when NATS_URL is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, AssignmentEvent) error { return nil }

func (Noop) Close() {}
