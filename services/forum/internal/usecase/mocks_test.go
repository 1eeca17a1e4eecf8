package usecase

import (
	"context"
	"sync"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/events"
)

// callLog records repository calls in order across all mocks of a test.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mockThreadRepo struct {
	log                       *callLog
	addThreadFunc             func(ctx context.Context, t domain.NewThread) (domain.AddedThread, error)
	verifyThreadAvailableFunc func(ctx context.Context, id string) error
	getThreadByIDFunc         func(ctx context.Context, id string) (domain.ThreadRow, error)
}

func (m *mockThreadRepo) AddThread(ctx context.Context, t domain.NewThread) (domain.AddedThread, error) {
	m.log.add("AddThread")
	return m.addThreadFunc(ctx, t)
}

func (m *mockThreadRepo) VerifyThreadAvailable(ctx context.Context, id string) error {
	m.log.add("VerifyThreadAvailable")
	if m.verifyThreadAvailableFunc == nil {
		return nil
	}
	return m.verifyThreadAvailableFunc(ctx, id)
}

func (m *mockThreadRepo) GetThreadByID(ctx context.Context, id string) (domain.ThreadRow, error) {
	m.log.add("GetThreadByID")
	return m.getThreadByIDFunc(ctx, id)
}

type mockCommentRepo struct {
	log                        *callLog
	addCommentFunc             func(ctx context.Context, c domain.NewComment) (domain.AddedComment, error)
	verifyCommentAvailableFunc func(ctx context.Context, id string) error
	verifyCommentOwnerFunc     func(ctx context.Context, id, owner string) error
	deleteCommentFunc          func(ctx context.Context, id string) error
	getCommentsFunc            func(ctx context.Context, threadID string) ([]domain.CommentRow, error)
}

func (m *mockCommentRepo) AddComment(ctx context.Context, c domain.NewComment) (domain.AddedComment, error) {
	m.log.add("AddComment")
	return m.addCommentFunc(ctx, c)
}

func (m *mockCommentRepo) VerifyCommentAvailable(ctx context.Context, id string) error {
	m.log.add("VerifyCommentAvailable")
	if m.verifyCommentAvailableFunc == nil {
		return nil
	}
	return m.verifyCommentAvailableFunc(ctx, id)
}

func (m *mockCommentRepo) VerifyCommentOwner(ctx context.Context, id, owner string) error {
	m.log.add("VerifyCommentOwner")
	if m.verifyCommentOwnerFunc == nil {
		return nil
	}
	return m.verifyCommentOwnerFunc(ctx, id, owner)
}

func (m *mockCommentRepo) DeleteComment(ctx context.Context, id string) error {
	m.log.add("DeleteComment")
	if m.deleteCommentFunc == nil {
		return nil
	}
	return m.deleteCommentFunc(ctx, id)
}

func (m *mockCommentRepo) GetCommentsByThreadID(ctx context.Context, threadID string) ([]domain.CommentRow, error) {
	m.log.add("GetCommentsByThreadID")
	return m.getCommentsFunc(ctx, threadID)
}

type mockReplyRepo struct {
	log                    *callLog
	addReplyFunc           func(ctx context.Context, r domain.NewReply) (domain.AddedReply, error)
	verifyReplyOwnerFunc   func(ctx context.Context, id, owner string) error
	deleteReplyFunc        func(ctx context.Context, id string) error
	getRepliesFunc         func(ctx context.Context, commentID string) ([]domain.ReplyRow, error)
	verifyReplyAvailableFn func(ctx context.Context, id string) error
}

func (m *mockReplyRepo) AddReply(ctx context.Context, r domain.NewReply) (domain.AddedReply, error) {
	m.log.add("AddReply")
	return m.addReplyFunc(ctx, r)
}

func (m *mockReplyRepo) VerifyReplyAvailable(ctx context.Context, id string) error {
	m.log.add("VerifyReplyAvailable")
	if m.verifyReplyAvailableFn == nil {
		return nil
	}
	return m.verifyReplyAvailableFn(ctx, id)
}

func (m *mockReplyRepo) VerifyReplyOwner(ctx context.Context, id, owner string) error {
	m.log.add("VerifyReplyOwner")
	if m.verifyReplyOwnerFunc == nil {
		return nil
	}
	return m.verifyReplyOwnerFunc(ctx, id, owner)
}

func (m *mockReplyRepo) DeleteReply(ctx context.Context, id string) error {
	m.log.add("DeleteReply")
	if m.deleteReplyFunc == nil {
		return nil
	}
	return m.deleteReplyFunc(ctx, id)
}

func (m *mockReplyRepo) GetRepliesByCommentID(ctx context.Context, commentID string) ([]domain.ReplyRow, error) {
	m.log.add("GetRepliesByCommentID:" + commentID)
	return m.getRepliesFunc(ctx, commentID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

var (
	_ domain.ThreadRepository  = (*mockThreadRepo)(nil)
	_ domain.CommentRepository = (*mockCommentRepo)(nil)
	_ domain.ReplyRepository   = (*mockReplyRepo)(nil)
)
