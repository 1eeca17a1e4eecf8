package domain

import (
	"context"
	"time"
)

// DeletedCommentContent replaces the content of a deleted comment in thread detail.
const DeletedCommentContent = "**komentar telah dihapus**"

type NewComment struct {
	Content  string
	ThreadID string
	Owner    string
}

// ParseNewComment validates a new-comment payload (content, threadId, owner).
func ParseNewComment(p Payload) (NewComment, error) {
	if err := check("NEW_COMMENT", p, str("content"), str("threadId"), str("owner")); err != nil {
		return NewComment{}, err
	}
	return NewComment{Content: p.str("content"), ThreadID: p.str("threadId"), Owner: p.str("owner")}, nil
}

type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

func ParseAddedComment(p Payload) (AddedComment, error) {
	if err := check("ADDED_COMMENT", p, str("id"), str("content"), str("owner")); err != nil {
		return AddedComment{}, err
	}
	return AddedComment{ID: p.str("id"), Content: p.str("content"), Owner: p.str("owner")}, nil
}

// CommentRow is a stored comment with a canonical deleted flag.
type CommentRow struct {
	ID       string
	Content  string
	Date     time.Time
	Owner    string
	Username string
	IsDelete bool
}

// ParseCommentRow validates a raw comment row and normalizes its deleted flag.
func ParseCommentRow(p Payload) (CommentRow, error) {
	const entity = "COMMENT_ROW"
	if err := check(entity, p, str("id"), str("content"), date("date"), str("username")); err != nil {
		return CommentRow{}, err
	}
	deleted, err := DeletedFlag(entity, p)
	if err != nil {
		return CommentRow{}, err
	}
	row := CommentRow{
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

// DetailComment is the projection of a comment inside DetailThread.
type DetailComment struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Date     time.Time     `json:"date"`
	Content  string        `json:"content"`
	IsDelete bool          `json:"isDelete"`
	Replies  []DetailReply `json:"replies"`
}

// CommentRepository is implemented by comment storage adapters.
type CommentRepository interface {
	AddComment(ctx context.Context, c NewComment) (AddedComment, error)
	// VerifyCommentAvailable returns a *NotFoundError when the comment does not exist.
	VerifyCommentAvailable(ctx context.Context, commentID string) error
	// VerifyCommentOwner returns a *NotFoundError when the comment does not exist
	// and an *AuthorizationError when it belongs to someone else.
	VerifyCommentOwner(ctx context.Context, commentID, owner string) error
	// DeleteComment sets the deleted flag. Deleting twice is not an error.
	DeleteComment(ctx context.Context, commentID string) error
	GetCommentsByThreadID(ctx context.Context, threadID string) ([]CommentRow, error)
}
