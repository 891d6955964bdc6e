package services

import (
	"context"
	"errors"
	"log/slog"

	"financeiro/internal/amqp"
)

// Publisher announces stored changes to interested parties.
type Publisher interface {
	PublishChange(ctx context.Context, entity string, op amqp.Op, id string) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, entity string, op amqp.Op, id string) error

func (f PublisherFunc) PublishChange(ctx context.Context, entity string, op amqp.Op, id string) error {
	return f(ctx, entity, op, id)
}

// FromAMQP returns nil for a nil client so callers never hold a typed nil.
func FromAMQP(c *amqp.Client) Publisher {
	if c == nil {
		return nil
	}
	return c
}

// MultiPublisher fans a change out to every non-nil publisher.
func MultiPublisher(pubs ...Publisher) Publisher {
	var out multiPublisher
	for _, p := range pubs {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type multiPublisher []Publisher

func (m multiPublisher) PublishChange(ctx context.Context, entity string, op amqp.Op, id string) error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.PublishChange(ctx, entity, op, id))
	}
	return errors.Join(errs...)
}

// notifier implements the save-then-publish rule shared by the services:
// the stored change stands even when publishing fails.
type notifier struct {
	publisher Publisher
}

func (n notifier) publish(ctx context.Context, entity string, op amqp.Op, id string) {
	if n.publisher == nil {
		slog.WarnContext(ctx, "Change publisher not available, skipping change message",
			"entity", entity, "op", op, "id", id)
		return
	}
	if err := n.publisher.PublishChange(ctx, entity, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"entity", entity, "op", op, "id", id, "error", err)
	}
}
