package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	at := time.Date(2024, 1, 1, 7, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	evt := New(SubjectCommentAdded, "comment-1", "thread-1", "user-1", at)

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, SubjectCommentAdded, evt.Type)
	assert.Equal(t, time.UTC, evt.OccurredAt.Location())
	assert.True(t, evt.OccurredAt.Equal(at))

	other := New(SubjectCommentAdded, "comment-1", "thread-1", "user-1", at)
	assert.NotEqual(t, evt.ID, other.ID)
}

func TestEvent_JSON(t *testing.T) {
	evt := New(SubjectReplyDelete, "reply-1", "comment-1", "user-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, evt.ID, got["event_id"])
	assert.Equal(t, "reply-1", got["entity_id"])
	assert.Equal(t, "comment-1", got["parent_id"])
}

func TestPublisher_StubMode(t *testing.T) {
	p, err := NewPublisher(nil, zap.NewNop())
	require.NoError(t, err)

	err = p.Publish(context.Background(), New(SubjectThreadAdded, "thread-1", "", "user-1", time.Now()))
	assert.NoError(t, err)
}

func TestSubjectsShareStreamPrefix(t *testing.T) {
	for _, s := range []string{SubjectThreadAdded, SubjectCommentAdded, SubjectCommentDelete, SubjectReplyAdded, SubjectReplyDelete} {
		assert.Regexp(t, `^forum\.`, s)
	}
}
