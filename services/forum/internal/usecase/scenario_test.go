package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/forum-platform/services/forum/internal/accounts"
	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

type forum struct {
	threads  *Threads
	comments *Comments
	replies  *Replies
	users    *store.InMemoryUserStore
}

// newForum wires the use cases over one in-memory database whose clock
// advances a minute per write and whose ids are sequential.
func newForum() *forum {
	var n int
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := store.NewMemoryDB(store.Options{
		NewID: func() string { n++; return strconv.Itoa(n) },
		Now:   func() time.Time { now = now.Add(time.Minute); return now },
	})
	th, cs, rs := store.NewInMemoryThreadStore(db), store.NewInMemoryCommentStore(db), store.NewInMemoryReplyStore(db)
	return &forum{
		threads:  NewThreads(th, cs, rs, Options{}),
		comments: NewComments(th, cs, Options{}),
		replies:  NewReplies(th, cs, rs, Options{}),
		users:    store.NewInMemoryUserStore(db),
	}
}

func (f *forum) user(t *testing.T, name string) string {
	t.Helper()
	u, err := f.users.AddUser(context.Background(), accounts.User{Username: name, PasswordHash: "x", Fullname: name})
	require.NoError(t, err)
	return u.ID
}

func TestScenario_ThreadLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newForum()
	alice, bob := f.user(t, "dicoding"), f.user(t, "johndoe")

	thread, err := f.threads.AddThread(ctx, domain.Payload{"title": "judul", "body": "isi", "owner": alice})
	require.NoError(t, err)

	first, err := f.comments.AddComment(ctx, domain.Payload{"content": "komentar pertama", "threadId": thread.ID, "owner": bob})
	require.NoError(t, err)
	second, err := f.comments.AddComment(ctx, domain.Payload{"content": "komentar kedua", "threadId": thread.ID, "owner": alice})
	require.NoError(t, err)

	reply, err := f.replies.AddReply(ctx, domain.Payload{"content": "balasan", "threadId": thread.ID, "commentId": first.ID, "owner": alice})
	require.NoError(t, err)
	_, err = f.replies.AddReply(ctx, domain.Payload{"content": "balasan kedua", "threadId": thread.ID, "commentId": first.ID, "owner": bob})
	require.NoError(t, err)

	// Only the owner may delete.
	err = f.comments.DeleteComment(ctx, DeleteCommentInput{ThreadID: thread.ID, CommentID: second.ID, Owner: bob})
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.comments.DeleteComment(ctx, DeleteCommentInput{ThreadID: thread.ID, CommentID: second.ID, Owner: alice}))
	// Deleting twice is still a success.
	require.NoError(t, f.comments.DeleteComment(ctx, DeleteCommentInput{ThreadID: thread.ID, CommentID: second.ID, Owner: alice}))
	require.NoError(t, f.replies.DeleteReply(ctx, DeleteReplyInput{ThreadID: thread.ID, CommentID: first.ID, ReplyID: reply.ID, Owner: alice}))

	detail, err := f.threads.GetThreadDetail(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "judul", detail.Title)
	assert.Equal(t, "isi", detail.Body)
	assert.Equal(t, "dicoding", detail.Username)

	require.Len(t, detail.Comments, 2)
	c1, c2 := detail.Comments[0], detail.Comments[1]
	assert.Equal(t, first.ID, c1.ID)
	assert.Equal(t, "komentar pertama", c1.Content)
	assert.Equal(t, "johndoe", c1.Username)
	assert.Equal(t, second.ID, c2.ID)
	assert.True(t, c2.IsDelete)
	assert.Equal(t, domain.DeletedCommentContent, c2.Content)

	require.Len(t, c1.Replies, 2)
	assert.Equal(t, reply.ID, c1.Replies[0].ID)
	assert.Equal(t, domain.DeletedReplyContent, c1.Replies[0].Content)
	assert.Equal(t, "balasan kedua", c1.Replies[1].Content)
	assert.Empty(t, c2.Replies)
}

func TestScenario_MissingReferences(t *testing.T) {
	ctx := context.Background()
	f := newForum()
	owner := f.user(t, "dicoding")

	_, err := f.comments.AddComment(ctx, domain.Payload{"content": "x", "threadId": "thread-missing", "owner": owner})
	require.ErrorIs(t, err, domain.ErrNotFound)

	thread, err := f.threads.AddThread(ctx, domain.Payload{"title": "judul", "body": "isi", "owner": owner})
	require.NoError(t, err)

	_, err = f.replies.AddReply(ctx, domain.Payload{"content": "x", "threadId": thread.ID, "commentId": "comment-missing", "owner": owner})
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.replies.DeleteReply(ctx, DeleteReplyInput{ThreadID: thread.ID, CommentID: "comment-missing", ReplyID: "reply-1", Owner: owner})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.threads.GetThreadDetail(ctx, "thread-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScenario_EqualTimestampsReadStable(t *testing.T) {
	ctx := context.Background()
	var n int
	db := store.NewMemoryDB(store.Options{
		NewID: func() string { n++; return strconv.Itoa(n) },
		Now:   func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	th, cs, rs := store.NewInMemoryThreadStore(db), store.NewInMemoryCommentStore(db), store.NewInMemoryReplyStore(db)
	threads, comments := NewThreads(th, cs, rs, Options{}), NewComments(th, cs, Options{})

	thread, err := threads.AddThread(ctx, domain.Payload{"title": "judul", "body": "isi", "owner": "user-1"})
	require.NoError(t, err)
	var want []string
	for i := 0; i < 6; i++ {
		c, err := comments.AddComment(ctx, domain.Payload{"content": "komentar", "threadId": thread.ID, "owner": "user-1"})
		require.NoError(t, err)
		want = append(want, c.ID)
	}

	for i := 0; i < 50; i++ {
		detail, err := threads.GetThreadDetail(ctx, thread.ID)
		require.NoError(t, err)
		got := make([]string, 0, len(detail.Comments))
		for _, c := range detail.Comments {
			got = append(got, c.ID)
		}
		require.Equal(t, want, got)
	}
}
