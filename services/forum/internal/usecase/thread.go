package usecase

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/events"
)

// replyFetchLimit bounds concurrent reply lookups for one thread detail.
const replyFetchLimit = 8

// Threads implements AddThread and GetThreadDetail.
type Threads struct {
	threads  domain.ThreadRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	opts     Options
}

func NewThreads(threads domain.ThreadRepository, comments domain.CommentRepository, replies domain.ReplyRepository, opts Options) *Threads {
	return &Threads{threads: threads, comments: comments, replies: replies, opts: opts.withDefaults()}
}

// AddThread validates p (title, body, owner) and persists the thread.
func (u *Threads) AddThread(ctx context.Context, p domain.Payload) (domain.AddedThread, error) {
	newThread, err := domain.ParseNewThread(p)
	if err != nil {
		return domain.AddedThread{}, err
	}

	added, err := u.threads.AddThread(ctx, newThread)
	if err != nil {
		return domain.AddedThread{}, err
	}
	u.opts.Log.Debug("thread added", zap.String("thread_id", added.ID), zap.String("owner", added.Owner))
	u.opts.publish(ctx, events.SubjectThreadAdded, added.ID, "", added.Owner)
	return added, nil
}

// GetThreadDetail assembles a thread with its comments and their replies,
// each level ordered by ascending date regardless of repository order.
// Deleted comments and replies keep their flag but have their content masked.
func (u *Threads) GetThreadDetail(ctx context.Context, threadID string) (domain.DetailThread, error) {
	if err := u.threads.VerifyThreadAvailable(ctx, threadID); err != nil {
		return domain.DetailThread{}, err
	}

	thread, err := u.threads.GetThreadByID(ctx, threadID)
	if err != nil {
		return domain.DetailThread{}, err
	}

	comments, err := u.comments.GetCommentsByThreadID(ctx, threadID)
	if err != nil {
		return domain.DetailThread{}, err
	}
	comments = slices.Clone(comments)
	slices.SortStableFunc(comments, func(a, b domain.CommentRow) int { return a.Date.Compare(b.Date) })

	// Each goroutine writes only its own index; ordering is fixed by the
	// sorted comments, not by completion order.
	replies := make([][]domain.ReplyRow, len(comments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(replyFetchLimit)
	for i, c := range comments {
		g.Go(func() error {
			rows, err := u.replies.GetRepliesByCommentID(gctx, c.ID)
			if err != nil {
				return err
			}
			replies[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DetailThread{}, err
	}

	detailComments := make([]domain.DetailComment, len(comments))
	for i, c := range comments {
		detailComments[i] = projectComment(c, projectReplies(replies[i]))
	}

	u.opts.Log.Debug("thread detail assembled", zap.String("thread_id", threadID), zap.Int("comments", len(detailComments)))
	return domain.ParseDetailThread(domain.Payload{
		"id":       thread.ID,
		"title":    thread.Title,
		"body":     thread.Body,
		"date":     thread.Date,
		"username": thread.Username,
		"comments": detailComments,
	})
}

func projectReplies(rows []domain.ReplyRow) []domain.DetailReply {
	rows = slices.Clone(rows)
	slices.SortStableFunc(rows, func(a, b domain.ReplyRow) int { return a.Date.Compare(b.Date) })

	out := make([]domain.DetailReply, len(rows))
	for i, r := range rows {
		content := r.Content
		if r.IsDelete {
			content = domain.DeletedReplyContent
		}
		out[i] = domain.DetailReply{
			ID:       r.ID,
			Username: r.Username,
			Date:     r.Date,
			Content:  content,
			IsDelete: r.IsDelete,
		}
	}
	return out
}

func projectComment(c domain.CommentRow, replies []domain.DetailReply) domain.DetailComment {
	content := c.Content
	if c.IsDelete {
		content = domain.DeletedCommentContent
	}
	return domain.DetailComment{
		ID:       c.ID,
		Username: c.Username,
		Date:     c.Date,
		Content:  content,
		IsDelete: c.IsDelete,
		Replies:  replies,
	}
}
