// Package store provides Postgres and in-memory adapters for the forum
// repository contracts.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Id prefixes keep ids self-describing.
const (
	threadPrefix  = "thread-"
	commentPrefix = "comment-"
	replyPrefix   = "reply-"
	userPrefix    = "user-"
)

// IDGenerator supplies the variable suffix of a new id.
type IDGenerator func() string

// Clock supplies creation timestamps.
type Clock func() time.Time

// UUIDGenerator is the default IDGenerator.
func UUIDGenerator() string { return uuid.NewString() }

// SystemClock is the default Clock.
func SystemClock() time.Time { return time.Now().UTC() }

// Options configures id generation and timestamping for any adapter.
// Zero values fall back to UUIDGenerator and SystemClock.
type Options struct {
	NewID IDGenerator
	Now   Clock
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = UUIDGenerator
	}
	if o.Now == nil {
		o.Now = SystemClock
	}
	return o
}
