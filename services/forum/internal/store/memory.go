package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/example/forum-platform/services/forum/internal/accounts"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type threadRecord struct {
	id, title, body, owner string
	date                   time.Time
}

type contentRecord struct {
	id, parentID, content, owner string
	date                         time.Time
	deleted                      bool
	seq                          uint64 // insertion order
}

type sessionRecord struct {
	userID    string
	expiresAt time.Time
}

// MemoryDB holds the tables shared by the in-memory stores.
// Development and tests only.
type MemoryDB struct {
	mu       sync.RWMutex
	opts     Options
	users    map[string]accounts.User // id -> user
	threads  map[string]threadRecord
	comments map[string]contentRecord
	replies  map[string]contentRecord
	sessions map[string]sessionRecord // token hash -> session
	seq      uint64
}

func NewMemoryDB(opts Options) *MemoryDB {
	return &MemoryDB{
		opts:     opts.withDefaults(),
		users:    make(map[string]accounts.User),
		threads:  make(map[string]threadRecord),
		comments: make(map[string]contentRecord),
		replies:  make(map[string]contentRecord),
		sessions: make(map[string]sessionRecord),
	}
}

// username resolves a display name; unknown owners fall back to their id.
// Caller must hold db.mu.
func (db *MemoryDB) username(owner string) string {
	if u, ok := db.users[owner]; ok {
		return u.Username
	}
	return owner
}

// InMemoryThreadStore implements domain.ThreadRepository.
type InMemoryThreadStore struct{ db *MemoryDB }

func NewInMemoryThreadStore(db *MemoryDB) *InMemoryThreadStore { return &InMemoryThreadStore{db: db} }

func (s *InMemoryThreadStore) AddThread(_ context.Context, t domain.NewThread) (domain.AddedThread, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec := threadRecord{
		id:    threadPrefix + s.db.opts.NewID(),
		title: t.Title,
		body:  t.Body,
		owner: t.Owner,
		date:  s.db.opts.Now(),
	}
	s.db.threads[rec.id] = rec
	return domain.ParseAddedThread(domain.Payload{"id": rec.id, "title": rec.title, "owner": rec.owner})
}

func (s *InMemoryThreadStore) VerifyThreadAvailable(_ context.Context, threadID string) error {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if _, ok := s.db.threads[threadID]; !ok {
		return &domain.NotFoundError{Resource: "thread", ID: threadID}
	}
	return nil
}

func (s *InMemoryThreadStore) GetThreadByID(_ context.Context, threadID string) (domain.ThreadRow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rec, ok := s.db.threads[threadID]
	if !ok {
		return domain.ThreadRow{}, &domain.NotFoundError{Resource: "thread", ID: threadID}
	}
	return domain.ParseThreadRow(domain.Payload{
		"id":       rec.id,
		"title":    rec.title,
		"body":     rec.body,
		"date":     rec.date,
		"username": s.db.username(rec.owner),
	})
}

// contentTable implements the add/verify/delete/list operations shared by
// comments and replies.
type contentTable struct {
	db       *MemoryDB
	resource string
	prefix   string
	rows     func() map[string]contentRecord
}

func (t contentTable) add(parentID, content, owner string) domain.Payload {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	rec := contentRecord{
		id:       t.prefix + t.db.opts.NewID(),
		parentID: parentID,
		content:  content,
		owner:    owner,
		date:     t.db.opts.Now(),
	}
	t.db.seq++
	rec.seq = t.db.seq
	t.rows()[rec.id] = rec
	return domain.Payload{"id": rec.id, "content": rec.content, "owner": rec.owner}
}

func (t contentTable) verifyAvailable(id string) error {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	if _, ok := t.rows()[id]; !ok {
		return &domain.NotFoundError{Resource: t.resource, ID: id}
	}
	return nil
}

func (t contentTable) verifyOwner(id, owner string) error {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	rec, ok := t.rows()[id]
	if !ok {
		return &domain.NotFoundError{Resource: t.resource, ID: id}
	}
	if rec.owner != owner {
		return &domain.AuthorizationError{Resource: t.resource, ID: id}
	}
	return nil
}

func (t contentTable) softDelete(id string) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	rec, ok := t.rows()[id]
	if !ok {
		return nil
	}
	rec.deleted = true
	t.rows()[id] = rec
	return nil
}

// list returns raw rows for parentID ordered by date, ties broken by
// insertion order.
func (t contentTable) list(parentID string) []domain.Payload {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	var recs []contentRecord
	for _, rec := range t.rows() {
		if rec.parentID == parentID {
			recs = append(recs, rec)
		}
	}
	slices.SortFunc(recs, func(a, b contentRecord) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]domain.Payload, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Payload{
			"id":       rec.id,
			"content":  rec.content,
			"date":     rec.date,
			"owner":    rec.owner,
			"username": t.db.username(rec.owner),
			"isDelete": rec.deleted,
		})
	}
	return out
}

// InMemoryCommentStore implements domain.CommentRepository.
type InMemoryCommentStore struct{ t contentTable }

func NewInMemoryCommentStore(db *MemoryDB) *InMemoryCommentStore {
	return &InMemoryCommentStore{t: contentTable{
		db: db, resource: "comment", prefix: commentPrefix,
		rows: func() map[string]contentRecord { return db.comments },
	}}
}

func (s *InMemoryCommentStore) AddComment(_ context.Context, c domain.NewComment) (domain.AddedComment, error) {
	return domain.ParseAddedComment(s.t.add(c.ThreadID, c.Content, c.Owner))
}

func (s *InMemoryCommentStore) VerifyCommentAvailable(_ context.Context, commentID string) error {
	return s.t.verifyAvailable(commentID)
}

func (s *InMemoryCommentStore) VerifyCommentOwner(_ context.Context, commentID, owner string) error {
	return s.t.verifyOwner(commentID, owner)
}

func (s *InMemoryCommentStore) DeleteComment(_ context.Context, commentID string) error {
	return s.t.softDelete(commentID)
}

func (s *InMemoryCommentStore) GetCommentsByThreadID(_ context.Context, threadID string) ([]domain.CommentRow, error) {
	raw := s.t.list(threadID)
	out := make([]domain.CommentRow, 0, len(raw))
	for _, p := range raw {
		row, err := domain.ParseCommentRow(p)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// InMemoryReplyStore implements domain.ReplyRepository.
type InMemoryReplyStore struct{ t contentTable }

func NewInMemoryReplyStore(db *MemoryDB) *InMemoryReplyStore {
	return &InMemoryReplyStore{t: contentTable{
		db: db, resource: "reply", prefix: replyPrefix,
		rows: func() map[string]contentRecord { return db.replies },
	}}
}

func (s *InMemoryReplyStore) AddReply(_ context.Context, r domain.NewReply) (domain.AddedReply, error) {
	return domain.ParseAddedReply(s.t.add(r.CommentID, r.Content, r.Owner))
}

func (s *InMemoryReplyStore) VerifyReplyAvailable(_ context.Context, replyID string) error {
	return s.t.verifyAvailable(replyID)
}

func (s *InMemoryReplyStore) VerifyReplyOwner(_ context.Context, replyID, owner string) error {
	return s.t.verifyOwner(replyID, owner)
}

func (s *InMemoryReplyStore) DeleteReply(_ context.Context, replyID string) error {
	return s.t.softDelete(replyID)
}

func (s *InMemoryReplyStore) GetRepliesByCommentID(_ context.Context, commentID string) ([]domain.ReplyRow, error) {
	raw := s.t.list(commentID)
	out := make([]domain.ReplyRow, 0, len(raw))
	for _, p := range raw {
		row, err := domain.ParseReplyRow(p)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// InMemoryUserStore implements accounts.UserRepository and accounts.SessionRepository.
type InMemoryUserStore struct{ db *MemoryDB }

func NewInMemoryUserStore(db *MemoryDB) *InMemoryUserStore { return &InMemoryUserStore{db: db} }

func (s *InMemoryUserStore) AddUser(_ context.Context, u accounts.User) (accounts.AddedUser, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Username == u.Username {
			return accounts.AddedUser{}, accounts.ErrUsernameTaken
		}
	}
	u.ID = userPrefix + s.db.opts.NewID()
	s.db.users[u.ID] = u
	return accounts.AddedUser{ID: u.ID, Username: u.Username, Fullname: u.Fullname}, nil
}

func (s *InMemoryUserStore) GetUserByUsername(_ context.Context, username string) (accounts.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return accounts.User{}, accounts.ErrInvalidCredentials
}

func (s *InMemoryUserStore) AddSession(_ context.Context, tokenHash, userID string, expiresAt time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.sessions[tokenHash] = sessionRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *InMemoryUserStore) GetSessionUser(_ context.Context, tokenHash string, now time.Time) (string, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	sess, ok := s.db.sessions[tokenHash]
	if !ok || now.After(sess.expiresAt) {
		return "", accounts.ErrInvalidRefresh
	}
	return sess.userID, nil
}

func (s *InMemoryUserStore) DeleteSession(_ context.Context, tokenHash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.sessions, tokenHash)
	return nil
}
