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

type addedReplyResponse struct {
	AddedReply domain.AddedReply `json:"addedReply"`
}

// PostReply handles POST /threads/{threadId}/comments/{commentId}/replies
func PostReply(svc ReplyService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := payload(w, r, "threadId", "commentId")
		if !ok {
			return
		}
		added, err := svc.AddReply(r.Context(), p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusCreated, addedReplyResponse{AddedReply: added})
	}
}

// DeleteReply handles DELETE /threads/{threadId}/comments/{commentId}/replies/{replyId}
func DeleteReply(svc ReplyService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerOf(w, r)
		if !ok {
			return
		}
		err := svc.DeleteReply(r.Context(), usecase.DeleteReplyInput{
			ThreadID:  strings.TrimSpace(chi.URLParam(r, "threadId")),
			CommentID: strings.TrimSpace(chi.URLParam(r, "commentId")),
			ReplyID:   strings.TrimSpace(chi.URLParam(r, "replyId")),
			Owner:     owner,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusOK, nil)
	}
}
