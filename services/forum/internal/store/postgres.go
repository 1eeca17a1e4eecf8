package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/forum-platform/services/forum/internal/accounts"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

const uniqueViolation = "23505"

// PostgresThreadStore persists threads in Postgres.
type PostgresThreadStore struct {
	pool *pgxpool.Pool
	opts Options
}

func NewPostgresThreadStore(pool *pgxpool.Pool, opts Options) *PostgresThreadStore {
	return &PostgresThreadStore{pool: pool, opts: opts.withDefaults()}
}

func (s *PostgresThreadStore) AddThread(ctx context.Context, t domain.NewThread) (domain.AddedThread, error) {
	const q = `INSERT INTO threads (id, title, body, owner, date)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id, title, owner`
	row, err := queryOne(ctx, s.pool, q, threadPrefix+s.opts.NewID(), t.Title, t.Body, t.Owner, s.opts.Now())
	if err != nil {
		return domain.AddedThread{}, err
	}
	return domain.ParseAddedThread(row)
}

func (s *PostgresThreadStore) VerifyThreadAvailable(ctx context.Context, threadID string) error {
	return verifyExists(ctx, s.pool, `SELECT EXISTS(SELECT 1 FROM threads WHERE id = $1)`, "thread", threadID)
}

func (s *PostgresThreadStore) GetThreadByID(ctx context.Context, threadID string) (domain.ThreadRow, error) {
	const q = `SELECT threads.id, threads.title, threads.body, threads.date, users.username
	           FROM threads
	           JOIN users ON users.id = threads.owner
	           WHERE threads.id = $1`
	row, err := queryOne(ctx, s.pool, q, threadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ThreadRow{}, &domain.NotFoundError{Resource: "thread", ID: threadID}
	}
	if err != nil {
		return domain.ThreadRow{}, err
	}
	return domain.ParseThreadRow(row)
}

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
	opts Options
}

func NewPostgresCommentStore(pool *pgxpool.Pool, opts Options) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool, opts: opts.withDefaults()}
}

func (s *PostgresCommentStore) AddComment(ctx context.Context, c domain.NewComment) (domain.AddedComment, error) {
	const q = `INSERT INTO comments (id, thread_id, content, owner, date, is_delete)
	           VALUES ($1, $2, $3, $4, $5, false)
	           RETURNING id, content, owner`
	row, err := queryOne(ctx, s.pool, q, commentPrefix+s.opts.NewID(), c.ThreadID, c.Content, c.Owner, s.opts.Now())
	if err != nil {
		return domain.AddedComment{}, err
	}
	return domain.ParseAddedComment(row)
}

func (s *PostgresCommentStore) VerifyCommentAvailable(ctx context.Context, commentID string) error {
	return verifyExists(ctx, s.pool, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, "comment", commentID)
}

func (s *PostgresCommentStore) VerifyCommentOwner(ctx context.Context, commentID, owner string) error {
	return verifyOwner(ctx, s.pool, `SELECT owner FROM comments WHERE id = $1`, "comment", commentID, owner)
}

func (s *PostgresCommentStore) DeleteComment(ctx context.Context, commentID string) error {
	_, err := s.pool.Exec(ctx, `UPDATE comments SET is_delete = true WHERE id = $1`, commentID)
	return err
}

func (s *PostgresCommentStore) GetCommentsByThreadID(ctx context.Context, threadID string) ([]domain.CommentRow, error) {
	const q = `SELECT comments.id, comments.content, comments.date, comments.owner, users.username, comments.is_delete
	           FROM comments
	           JOIN users ON users.id = comments.owner
	           WHERE comments.thread_id = $1
	           ORDER BY comments.date ASC, comments.id ASC`
	rows, err := queryAll(ctx, s.pool, q, threadID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommentRow, 0, len(rows))
	for _, p := range rows {
		c, err := domain.ParseCommentRow(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// PostgresReplyStore persists replies in Postgres.
type PostgresReplyStore struct {
	pool *pgxpool.Pool
	opts Options
}

func NewPostgresReplyStore(pool *pgxpool.Pool, opts Options) *PostgresReplyStore {
	return &PostgresReplyStore{pool: pool, opts: opts.withDefaults()}
}

func (s *PostgresReplyStore) AddReply(ctx context.Context, r domain.NewReply) (domain.AddedReply, error) {
	const q = `INSERT INTO replies (id, comment_id, content, owner, date, is_delete)
	           VALUES ($1, $2, $3, $4, $5, false)
	           RETURNING id, content, owner`
	row, err := queryOne(ctx, s.pool, q, replyPrefix+s.opts.NewID(), r.CommentID, r.Content, r.Owner, s.opts.Now())
	if err != nil {
		return domain.AddedReply{}, err
	}
	return domain.ParseAddedReply(row)
}

func (s *PostgresReplyStore) VerifyReplyAvailable(ctx context.Context, replyID string) error {
	return verifyExists(ctx, s.pool, `SELECT EXISTS(SELECT 1 FROM replies WHERE id = $1)`, "reply", replyID)
}

func (s *PostgresReplyStore) VerifyReplyOwner(ctx context.Context, replyID, owner string) error {
	return verifyOwner(ctx, s.pool, `SELECT owner FROM replies WHERE id = $1`, "reply", replyID, owner)
}

func (s *PostgresReplyStore) DeleteReply(ctx context.Context, replyID string) error {
	_, err := s.pool.Exec(ctx, `UPDATE replies SET is_delete = true WHERE id = $1`, replyID)
	return err
}

func (s *PostgresReplyStore) GetRepliesByCommentID(ctx context.Context, commentID string) ([]domain.ReplyRow, error) {
	const q = `SELECT replies.id, replies.content, replies.date, replies.owner, users.username, replies.is_delete
	           FROM replies
	           JOIN users ON users.id = replies.owner
	           WHERE replies.comment_id = $1
	           ORDER BY replies.date ASC, replies.id ASC`
	rows, err := queryAll(ctx, s.pool, q, commentID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReplyRow, 0, len(rows))
	for _, p := range rows {
		r, err := domain.ParseReplyRow(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// PostgresUserStore persists users and refresh sessions in Postgres.
type PostgresUserStore struct {
	pool *pgxpool.Pool
	opts Options
}

func NewPostgresUserStore(pool *pgxpool.Pool, opts Options) *PostgresUserStore {
	return &PostgresUserStore{pool: pool, opts: opts.withDefaults()}
}

func (s *PostgresUserStore) AddUser(ctx context.Context, u accounts.User) (accounts.AddedUser, error) {
	const q = `INSERT INTO users (id, username, password, fullname)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, username, fullname`
	var out accounts.AddedUser
	err := s.pool.QueryRow(ctx, q, userPrefix+s.opts.NewID(), u.Username, u.PasswordHash, u.Fullname).
		Scan(&out.ID, &out.Username, &out.Fullname)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return accounts.AddedUser{}, accounts.ErrUsernameTaken
		}
		return accounts.AddedUser{}, err
	}
	return out, nil
}

func (s *PostgresUserStore) GetUserByUsername(ctx context.Context, username string) (accounts.User, error) {
	const q = `SELECT id, username, password, fullname FROM users WHERE username = $1`
	var u accounts.User
	err := s.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname)
	if errors.Is(err, pgx.ErrNoRows) {
		return accounts.User{}, accounts.ErrInvalidCredentials
	}
	return u, err
}

func (s *PostgresUserStore) AddSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	const q = `INSERT INTO authentications (token_hash, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.pool.Exec(ctx, q, tokenHash, userID, expiresAt, s.opts.Now())
	return err
}

func (s *PostgresUserStore) GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	const q = `SELECT user_id FROM authentications WHERE token_hash = $1 AND expires_at > $2`
	var userID string
	err := s.pool.QueryRow(ctx, q, tokenHash, now).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", accounts.ErrInvalidRefresh
	}
	return userID, err
}

func (s *PostgresUserStore) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM authentications WHERE token_hash = $1`, tokenHash)
	return err
}

// queryOne returns the single row of q as a raw payload, or pgx.ErrNoRows.
func queryOne(ctx context.Context, pool *pgxpool.Pool, q string, args ...any) (domain.Payload, error) {
	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	return domain.Payload(row), nil
}

func queryAll(ctx context.Context, pool *pgxpool.Pool, q string, args ...any) ([]domain.Payload, error) {
	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payload, len(maps))
	for i, m := range maps {
		out[i] = domain.Payload(m)
	}
	return out, nil
}

func verifyExists(ctx context.Context, pool *pgxpool.Pool, q, resource, id string) error {
	var exists bool
	if err := pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

func verifyOwner(ctx context.Context, pool *pgxpool.Pool, q, resource, id, owner string) error {
	var stored string
	err := pool.QueryRow(ctx, q, id).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	if err != nil {
		return err
	}
	if stored != owner {
		return &domain.AuthorizationError{Resource: resource, ID: id}
	}
	return nil
}
