package domain

import (
	"context"
	"time"
)

// NewThread is a validated request to create a thread.
type NewThread struct {
	Title string
	Body  string
	Owner string
}

// ParseNewThread validates a new-thread payload (title, body, owner).
func ParseNewThread(p Payload) (NewThread, error) {
	if err := check("NEW_THREAD", p, str("title"), str("body"), str("owner")); err != nil {
		return NewThread{}, err
	}
	return NewThread{Title: p.str("title"), Body: p.str("body"), Owner: p.str("owner")}, nil
}

// AddedThread is what storage reports back after persisting a thread.
type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// ParseAddedThread validates a row returned by ThreadRepository.AddThread.
func ParseAddedThread(p Payload) (AddedThread, error) {
	if err := check("ADDED_THREAD", p, str("id"), str("title"), str("owner")); err != nil {
		return AddedThread{}, err
	}
	return AddedThread{ID: p.str("id"), Title: p.str("title"), Owner: p.str("owner")}, nil
}

// ThreadRow holds the root attributes of a thread, joined with the owner's display name.
type ThreadRow struct {
	ID       string
	Title    string
	Body     string
	Date     time.Time
	Username string
}

// ParseThreadRow validates a raw thread row.
func ParseThreadRow(p Payload) (ThreadRow, error) {
	if err := check("THREAD_ROW", p, str("id"), str("title"), str("body"), date("date"), str("username")); err != nil {
		return ThreadRow{}, err
	}
	return ThreadRow{
		ID:       p.str("id"),
		Title:    p.str("title"),
		Body:     p.str("body"),
		Date:     p.time("date"),
		Username: p.str("username"),
	}, nil
}

// DetailThread is the read-only aggregate returned by thread detail retrieval.
type DetailThread struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Date     time.Time       `json:"date"`
	Username string          `json:"username"`
	Comments []DetailComment `json:"comments"`
}

// ParseDetailThread validates the assembled aggregate before it leaves the core.
// The comments key is optional and defaults to an empty sequence.
func ParseDetailThread(p Payload) (DetailThread, error) {
	const entity = "DETAIL_THREAD"
	if err := check(entity, p, str("id"), str("title"), str("body"), date("date"), str("username")); err != nil {
		return DetailThread{}, err
	}
	comments := []DetailComment{}
	if raw, ok := p["comments"]; ok && raw != nil {
		cs, ok := raw.([]DetailComment)
		if !ok {
			return DetailThread{}, &ValidationError{Entity: entity, Kind: KindDataType, Field: "comments"}
		}
		if cs != nil {
			comments = cs
		}
	}
	return DetailThread{
		ID:       p.str("id"),
		Title:    p.str("title"),
		Body:     p.str("body"),
		Date:     p.time("date"),
		Username: p.str("username"),
		Comments: comments,
	}, nil
}

// ThreadRepository is implemented by thread storage adapters.
type ThreadRepository interface {
	AddThread(ctx context.Context, t NewThread) (AddedThread, error)
	// VerifyThreadAvailable returns a *NotFoundError when the thread does not exist.
	VerifyThreadAvailable(ctx context.Context, threadID string) error
	GetThreadByID(ctx context.Context, threadID string) (ThreadRow, error)
}

// ParseThreadRef validates the threadId a payload refers to, reporting
// failures under entity.
func ParseThreadRef(entity string, p Payload) (string, error) {
	if err := check(entity, p, str("threadId")); err != nil {
		return "", err
	}
	return p.str("threadId"), nil
}
