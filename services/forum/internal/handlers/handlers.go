// Package handlers exposes the forum use cases over HTTP.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/auth"
	"github.com/example/forum-platform/internal/platform/httpserver"
	"github.com/example/forum-platform/services/forum/internal/accounts"
	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/usecase"
)

type ThreadService interface {
	AddThread(ctx context.Context, p domain.Payload) (domain.AddedThread, error)
	GetThreadDetail(ctx context.Context, threadID string) (domain.DetailThread, error)
}

type CommentService interface {
	AddComment(ctx context.Context, p domain.Payload) (domain.AddedComment, error)
	DeleteComment(ctx context.Context, in usecase.DeleteCommentInput) error
}

type ReplyService interface {
	AddReply(ctx context.Context, p domain.Payload) (domain.AddedReply, error)
	DeleteReply(ctx context.Context, in usecase.DeleteReplyInput) error
}

type AccountService interface {
	Register(ctx context.Context, username, password, fullname string) (accounts.AddedUser, error)
	Login(ctx context.Context, username, password string) (accounts.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// validationMessages maps entity.kind to the client-facing message.
var validationMessages = map[string]string{
	"NEW_THREAD." + string(domain.KindMissingProperty):  "cannot create thread: required property missing",
	"NEW_THREAD." + string(domain.KindDataType):         "cannot create thread: property has the wrong data type",
	"NEW_COMMENT." + string(domain.KindMissingProperty): "cannot create comment: required property missing",
	"NEW_COMMENT." + string(domain.KindDataType):        "cannot create comment: property has the wrong data type",
	"NEW_REPLY." + string(domain.KindMissingProperty):   "cannot create reply: required property missing",
	"NEW_REPLY." + string(domain.KindDataType):          "cannot create reply: property has the wrong data type",
}

// writeError maps an error onto the response envelope. Only request payload
// validation is a client error; a stored row failing validation is not.
// Unclassified errors are logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var nf *domain.NotFoundError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve) && strings.HasPrefix(ve.Entity, "NEW_"):
		msg, ok := validationMessages[ve.Error()]
		if !ok {
			msg = ve.Error()
		}
		api.BadRequest(w, msg)
	case errors.As(err, &nf):
		api.NotFound(w, nf.Resource+" not found")
	case errors.Is(err, domain.ErrForbidden):
		api.Forbidden(w, "you are not the owner of this resource")
	case errors.Is(err, accounts.ErrUsernameTaken):
		api.BadRequest(w, "username is already taken")
	case errors.Is(err, accounts.ErrUsernameInvalid):
		api.BadRequest(w, "username contains restricted characters")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		api.Unauthorized(w, "invalid username or password")
	case errors.Is(err, accounts.ErrInvalidRefresh):
		api.BadRequest(w, "refresh token is not registered")
	default:
		rid := httpserver.RequestIDFromContext(r.Context())
		log.Error("request failed",
			zap.String("request_id", rid),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		api.Internal(w, rid)
	}
}

// payload decodes the JSON body into a raw payload and overlays the path
// params and the authenticated owner. A body-supplied owner is ignored.
func payload(w http.ResponseWriter, r *http.Request, params ...string) (domain.Payload, bool) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok || owner == "" {
		api.Unauthorized(w, "missing authentication")
		return nil, false
	}

	p := domain.Payload{}
	if err := api.DecodeJSON(w, r, &p); err != nil && !errors.Is(err, io.EOF) {
		api.BadRequest(w, "invalid JSON body")
		return nil, false
	}
	if p == nil {
		p = domain.Payload{}
	}
	for _, name := range params {
		p[name] = strings.TrimSpace(chi.URLParam(r, name))
	}
	p["owner"] = owner
	return p, true
}

func ownerOf(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := auth.UserIDFromContext(r.Context())
	if !ok || owner == "" {
		api.Unauthorized(w, "missing authentication")
		return "", false
	}
	return owner, true
}
