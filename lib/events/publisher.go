// Package events publishes activity log entries to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher delivers a JSON event on a subject
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes JSON-encoded events on a NATS connection
type NATSPublisher struct {
	nc Conn
}

// NewNATSPublisher wraps an established connection
func NewNATSPublisher(nc Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

// Publish encodes v and sends it. NATS publish does not take a context, so
// cancellation is only checked up front.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// Subject builds "<prefix>.<name>" with the name lowercased
func Subject(prefix, name string) string {
	return prefix + "." + strings.ToLower(name)
}

// Connect dials NATS with reconnect handling that reports through log
func Connect(url string, log *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("taskforge-api"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}
