package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/events"
)

// DeleteCommentInput identifies a comment and the acting owner.
type DeleteCommentInput struct {
	ThreadID  string
	CommentID string
	Owner     string
}

// Comments implements AddComment and DeleteComment.
type Comments struct {
	threads  domain.ThreadRepository
	comments domain.CommentRepository
	opts     Options
}

func NewComments(threads domain.ThreadRepository, comments domain.CommentRepository, opts Options) *Comments {
	return &Comments{threads: threads, comments: comments, opts: opts.withDefaults()}
}

// AddComment validates p (content, threadId, owner), requires the thread to
// exist and persists the comment.
func (u *Comments) AddComment(ctx context.Context, p domain.Payload) (domain.AddedComment, error) {
	newComment, err := domain.ParseNewComment(p)
	if err != nil {
		return domain.AddedComment{}, err
	}
	if err := u.threads.VerifyThreadAvailable(ctx, newComment.ThreadID); err != nil {
		return domain.AddedComment{}, err
	}

	added, err := u.comments.AddComment(ctx, newComment)
	if err != nil {
		return domain.AddedComment{}, err
	}
	u.opts.Log.Debug("comment added", zap.String("comment_id", added.ID), zap.String("thread_id", newComment.ThreadID))
	u.opts.publish(ctx, events.SubjectCommentAdded, added.ID, newComment.ThreadID, added.Owner)
	return added, nil
}

// DeleteComment soft-deletes a comment owned by in.Owner. Deleting an
// already deleted comment succeeds.
func (u *Comments) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := u.threads.VerifyThreadAvailable(ctx, in.ThreadID); err != nil {
		return err
	}
	if err := u.comments.VerifyCommentOwner(ctx, in.CommentID, in.Owner); err != nil {
		return err
	}
	if err := u.comments.DeleteComment(ctx, in.CommentID); err != nil {
		return err
	}
	u.opts.Log.Debug("comment deleted", zap.String("comment_id", in.CommentID))
	u.opts.publish(ctx, events.SubjectCommentDelete, in.CommentID, in.ThreadID, in.Owner)
	return nil
}
