package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type addedThreadResponse struct {
	AddedThread domain.AddedThread `json:"addedThread"`
}

type threadResponse struct {
	Thread domain.DetailThread `json:"thread"`
}

// PostThread handles POST /threads
func PostThread(svc ThreadService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := payload(w, r)
		if !ok {
			return
		}
		added, err := svc.AddThread(r.Context(), p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusCreated, addedThreadResponse{AddedThread: added})
	}
}

// GetThread handles GET /threads/{threadId}
func GetThread(svc ThreadService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID := strings.TrimSpace(chi.URLParam(r, "threadId"))
		detail, err := svc.GetThreadDetail(r.Context(), threadID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		api.Success(w, http.StatusOK, threadResponse{Thread: detail})
	}
}
