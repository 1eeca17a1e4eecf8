package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/events"
)

type DeleteReplyInput struct {
	ThreadID  string
	CommentID string
	ReplyID   string
	Owner     string
}

// Replies implements AddReply and DeleteReply.
type Replies struct {
	threads  domain.ThreadRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	opts     Options
}

func NewReplies(threads domain.ThreadRepository, comments domain.CommentRepository, replies domain.ReplyRepository, opts Options) *Replies {
	return &Replies{threads: threads, comments: comments, replies: replies, opts: opts.withDefaults()}
}

// AddReply validates p (content, commentId, owner; threadId is also
// required), checks that thread and comment exist and persists the reply.
func (u *Replies) AddReply(ctx context.Context, p domain.Payload) (domain.AddedReply, error) {
	newReply, err := domain.ParseNewReply(p)
	if err != nil {
		return domain.AddedReply{}, err
	}
	threadID, err := domain.ParseThreadRef("NEW_REPLY", p)
	if err != nil {
		return domain.AddedReply{}, err
	}

	if err := u.threads.VerifyThreadAvailable(ctx, threadID); err != nil {
		return domain.AddedReply{}, err
	}
	if err := u.comments.VerifyCommentAvailable(ctx, newReply.CommentID); err != nil {
		return domain.AddedReply{}, err
	}

	added, err := u.replies.AddReply(ctx, newReply)
	if err != nil {
		return domain.AddedReply{}, err
	}
	u.opts.Log.Debug("reply added", zap.String("reply_id", added.ID), zap.String("comment_id", newReply.CommentID))
	u.opts.publish(ctx, events.SubjectReplyAdded, added.ID, newReply.CommentID, added.Owner)
	return added, nil
}

// DeleteReply checks thread existence, comment existence and reply ownership,
// in that order, before soft-deleting the reply.
func (u *Replies) DeleteReply(ctx context.Context, in DeleteReplyInput) error {
	if err := u.threads.VerifyThreadAvailable(ctx, in.ThreadID); err != nil {
		return err
	}
	if err := u.comments.VerifyCommentAvailable(ctx, in.CommentID); err != nil {
		return err
	}
	if err := u.replies.VerifyReplyOwner(ctx, in.ReplyID, in.Owner); err != nil {
		return err
	}
	if err := u.replies.DeleteReply(ctx, in.ReplyID); err != nil {
		return err
	}
	u.opts.Log.Debug("reply deleted", zap.String("reply_id", in.ReplyID))
	u.opts.publish(ctx, events.SubjectReplyDelete, in.ReplyID, in.CommentID, in.Owner)
	return nil
}
