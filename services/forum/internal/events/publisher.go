// Package events publishes forum domain events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectThreadAdded   = "forum.thread.added"
	SubjectCommentAdded  = "forum.comment.added"
	SubjectCommentDelete = "forum.comment.deleted"
	SubjectReplyAdded    = "forum.reply.added"
	SubjectReplyDelete   = "forum.reply.deleted"

	streamName = "FORUM"
)

// Event is the payload published for every successful forum mutation.
type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	EntityID   string    `json:"entity_id"`
	ParentID   string    `json:"parent_id,omitempty"`
	Owner      string    `json:"owner"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event of the given subject with a fresh id.
func New(subject, entityID, parentID, owner string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       subject,
		EntityID:   entityID,
		ParentID:   parentID,
		Owner:      owner,
		OccurredAt: at.UTC(),
	}
}

// Publisher publishes forum events to JetStream.
// A Publisher without a connection is a stub that only logs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// NewPublisher ensures the FORUM stream exists on nc.
// If nc is nil, returns a no-op publisher (stub).
func NewPublisher(nc *nats.Conn, log *zap.Logger) (*Publisher, error) {
	if nc == nil {
		log.Warn("NATS not configured, forum events will not be published (stub mode)")
		return &Publisher{log: log}, nil
	}

	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}

	p := &Publisher{js: js, log: log}
	if err := p.ensureStream(); err != nil {
		log.Warn("failed to ensure NATS stream", zap.String("stream", streamName), zap.Error(err))
	}
	log.Info("NATS publisher initialised", zap.String("stream", streamName))
	return p, nil
}

func (p *Publisher) ensureStream() error {
	_, err := p.js.StreamInfo(streamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"forum.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

// Publish sends evt to the subject named by its Type.
// If JetStream is not configured (stub), it logs and returns nil.
func (p *Publisher) Publish(ctx context.Context, evt Event) error {
	if p.js == nil {
		p.log.Debug("NATS stub: skipping publish", zap.String("subject", evt.Type), zap.String("event_id", evt.ID))
		return nil
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	ack, err := p.js.Publish(evt.Type, data, nats.Context(ctx), nats.MsgId(evt.ID))
	if err != nil {
		return err
	}

	p.log.Debug("NATS event published",
		zap.String("subject", evt.Type),
		zap.String("event_id", evt.ID),
		zap.Uint64("seq", ack.Sequence),
	)
	return nil
}
