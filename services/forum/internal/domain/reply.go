package domain

import (
	"context"
	"time"
)

// DeletedReplyContent replaces the content of a deleted reply in thread detail.
const DeletedReplyContent = "**balasan telah dihapus**"

type NewReply struct {
	Content   string
	CommentID string
	Owner     string
}

// ParseNewReply validates a new-reply payload (content, commentId, owner).
func ParseNewReply(p Payload) (NewReply, error) {
	if err := check("NEW_REPLY", p, str("content"), str("commentId"), str("owner")); err != nil {
		return NewReply{}, err
	}
	return NewReply{Content: p.str("content"), CommentID: p.str("commentId"), Owner: p.str("owner")}, nil
}

type AddedReply struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

func ParseAddedReply(p Payload) (AddedReply, error) {
	if err := check("ADDED_REPLY", p, str("id"), str("content"), str("owner")); err != nil {
		return AddedReply{}, err
	}
	return AddedReply{ID: p.str("id"), Content: p.str("content"), Owner: p.str("owner")}, nil
}

// ReplyRow is a stored reply with a canonical deleted flag.
type ReplyRow struct {
	ID       string
	Content  string
	Date     time.Time
	Owner    string
	Username string
	IsDelete bool
}

func ParseReplyRow(p Payload) (ReplyRow, error) {
	const entity = "REPLY_ROW"
	if err := check(entity, p, str("id"), str("content"), date("date"), str("username")); err != nil {
		return ReplyRow{}, err
	}
	deleted, err := DeletedFlag(entity, p)
	if err != nil {
		return ReplyRow{}, err
	}
	row := ReplyRow{
		ID:       p.str("id"),
		Content:  p.str("content"),
		Date:     p.time("date"),
		Username: p.str("username"),
		IsDelete: deleted,
	}
	if owner, ok := p["owner"].(string); ok {
		row.Owner = owner
	}
	return row, nil
}

type DetailReply struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
	IsDelete bool      `json:"isDelete"`
}

// ReplyRepository is implemented by reply storage adapters. It mirrors
// CommentRepository, scoped by comment instead of thread.
type ReplyRepository interface {
	AddReply(ctx context.Context, r NewReply) (AddedReply, error)
	VerifyReplyAvailable(ctx context.Context, replyID string) error
	VerifyReplyOwner(ctx context.Context, replyID, owner string) error
	DeleteReply(ctx context.Context, replyID string) error
	GetRepliesByCommentID(ctx context.Context, commentID string) ([]ReplyRow, error)
}
