// Package usecase orchestrates forum operations over the repository contracts.
//
// Every mutation validates its payload first, then runs existence and
// ownership checks in order, and only then issues the single mutating call,
// so a failed check leaves storage untouched. Errors from repositories are
// returned as-is.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/forum-platform/services/forum/internal/events"
)

// Publisher receives an event after each successful mutation.
type Publisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) error { return nil }

// Options carries the collaborators shared by all use cases. Zero values fall
// back to a no-op publisher, a no-op logger and time.Now.
type Options struct {
	Events Publisher
	Log    *zap.Logger
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Events == nil {
		o.Events = nopPublisher{}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// publish is best-effort: the write already happened, so a failure is only logged.
func (o Options) publish(ctx context.Context, subject, entityID, parentID, owner string) {
	evt := events.New(subject, entityID, parentID, owner, o.Now())
	if err := o.Events.Publish(ctx, evt); err != nil {
		o.Log.Warn("publish event", zap.String("subject", subject), zap.String("entity_id", entityID), zap.Error(err))
	}
}
