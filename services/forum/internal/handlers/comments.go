package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/usecase"
)

type addedCommentResponse struct {
	AddedComment domain.AddedComment `json:"addedComment"`
}

// PostComment handles POST /threads/{threadId}/comments
func PostComment(svc CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := payload(w, r, "threadId")
		if !ok {
			return
		}
		added, err := svc.AddComment(r.Context(), p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusCreated, addedCommentResponse{AddedComment: added})
	}
}

// DeleteComment handles DELETE /threads/{threadId}/comments/{commentId}
func DeleteComment(svc CommentService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerOf(w, r)
		if !ok {
			return
		}
		err := svc.DeleteComment(r.Context(), usecase.DeleteCommentInput{
			ThreadID:  strings.TrimSpace(chi.URLParam(r, "threadId")),
			CommentID: strings.TrimSpace(chi.URLParam(r, "commentId")),
			Owner:     owner,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusOK, nil)
	}
}
