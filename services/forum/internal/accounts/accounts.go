// Package accounts registers users and issues/revokes their tokens.
package accounts

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameInvalid    = errors.New("username contains restricted characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("refresh token not found")
)

var usernamePattern = regexp.MustCompile(`^\w+$`)

// User is a registered account. PasswordHash never leaves this package's callers.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Fullname     string
}

// AddedUser is returned after registration.
type AddedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// UserRepository is implemented by user storage adapters.
type UserRepository interface {
	// AddUser returns ErrUsernameTaken when the username already exists.
	AddUser(ctx context.Context, u User) (AddedUser, error)
	// GetUserByUsername returns ErrInvalidCredentials when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// SessionRepository stores hashes of issued refresh tokens.
type SessionRepository interface {
	AddSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	// GetSessionUser returns ErrInvalidRefresh for unknown or expired hashes.
	GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

// TokenIssuer mints access and refresh tokens.
type TokenIssuer interface {
	NewAccessToken(userID string, now time.Time) (string, time.Time, error)
	NewRefreshToken() (raw string, hash string, err error)
	HashRefreshToken(raw string) string
}

// Tokens is the pair returned by Login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	Users      UserRepository
	Sessions   SessionRepository
	Tokens     TokenIssuer
	RefreshTTL time.Duration
	Log        *zap.Logger
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password, fullname string) (AddedUser, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return AddedUser{}, ErrUsernameInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AddedUser{}, err
	}

	u, err := s.Users.AddUser(ctx, User{Username: username, PasswordHash: string(hash), Fullname: fullname})
	if err != nil {
		return AddedUser{}, err
	}
	s.Log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, username, password string) (Tokens, error) {
	u, err := s.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Tokens{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Tokens{}, ErrInvalidCredentials
	}

	now := s.now()
	access, _, err := s.Tokens.NewAccessToken(u.ID, now)
	if err != nil {
		return Tokens{}, err
	}
	raw, hash, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return Tokens{}, err
	}
	if err := s.Sessions.AddSession(ctx, hash, u.ID, now.Add(s.RefreshTTL)); err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: raw}, nil
}

// Refresh issues a new access token for a stored refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	now := s.now()
	userID, err := s.Sessions.GetSessionUser(ctx, s.Tokens.HashRefreshToken(refreshToken), now)
	if err != nil {
		return "", err
	}
	access, _, err := s.Tokens.NewAccessToken(userID, now)
	return access, err
}

// Logout revokes a refresh token. Unknown tokens yield ErrInvalidRefresh.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash := s.Tokens.HashRefreshToken(refreshToken)
	if _, err := s.Sessions.GetSessionUser(ctx, hash, s.now()); err != nil {
		return err
	}
	return s.Sessions.DeleteSession(ctx, hash)
}
