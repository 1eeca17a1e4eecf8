package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/auth"
	"github.com/example/forum-platform/internal/platform/config"
	"github.com/example/forum-platform/internal/platform/db"
	"github.com/example/forum-platform/internal/platform/httpserver"
	"github.com/example/forum-platform/internal/platform/logging"
	"github.com/example/forum-platform/internal/platform/natsconn"
	"github.com/example/forum-platform/internal/platform/run"
	"github.com/example/forum-platform/services/forum/internal/accounts"
	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/events"
	"github.com/example/forum-platform/services/forum/internal/handlers"
	"github.com/example/forum-platform/services/forum/internal/store"
	"github.com/example/forum-platform/services/forum/internal/usecase"
	"github.com/example/forum-platform/services/forum/migrations"
)

// stores groups the repository adapters of one backend.
type stores struct {
	threads  domain.ThreadRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	users    accounts.UserRepository
	sessions accounts.SessionRepository
	ready    func() error
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st := initStores(cfg, log)
	if st.close != nil {
		defer st.close()
	}

	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = natsconn.Connect(natsconn.Options{
			Name:          cfg.ServiceName,
			URL:           cfg.NATS.URL,
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: cfg.NATS.ReconnectWait,
			Logger:        log,
		})
		if err != nil {
			log.Error("nats connect", zap.Error(err))
			nc = nil
		} else {
			defer nc.Close()
		}
	}
	publisher, err := events.NewPublisher(nc, log)
	if err != nil {
		log.Error("events publisher", zap.Error(err))
		run.Exit(1)
	}

	opts := usecase.Options{Events: publisher, Log: log}
	threads := usecase.NewThreads(st.threads, st.comments, st.replies, opts)
	comments := usecase.NewComments(st.threads, st.comments, opts)
	replies := usecase.NewReplies(st.threads, st.comments, st.replies, opts)

	tokens := auth.TokenService{
		Secret:    cfg.Auth.JWTSecret,
		Issuer:    cfg.ServiceName,
		AccessTTL: cfg.Auth.AccessTokenTTL,
	}
	accountSvc := &accounts.Service{
		Users:      st.users,
		Sessions:   st.sessions,
		Tokens:     tokens,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
		Log:        log,
	}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc:   st.ready,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      log,
	})

	r.Post("/users", handlers.PostUser(accountSvc, log))
	r.Route("/authentications", func(r chi.Router) {
		r.Post("/", handlers.PostAuthentication(accountSvc, log))
		r.Put("/", handlers.PutAuthentication(accountSvc, log))
		r.Delete("/", handlers.DeleteAuthentication(accountSvc, log))
	})

	// Thread routes (public read, auth required for write)
	r.Get("/threads/{threadId}", handlers.GetThread(threads, log))
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(tokens.Verifier()))
		r.Post("/threads", handlers.PostThread(threads, log))
		r.Post("/threads/{threadId}/comments", handlers.PostComment(comments, log))
		r.Delete("/threads/{threadId}/comments/{commentId}", handlers.DeleteComment(comments, log))
		r.Post("/threads/{threadId}/comments/{commentId}/replies", handlers.PostReply(replies, log))
		r.Delete("/threads/{threadId}/comments/{commentId}/replies/{replyId}", handlers.DeleteReply(replies, log))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			runner.Graceful(srv.Shutdown)
		}()
		return srv.Start()
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// initStores selects the storage backend. In production (APP_ENV=production)
// it requires a working Postgres connection and terminates the process
// otherwise; elsewhere it falls back to the in-memory stores.
func initStores(cfg config.AppConfig, log *zap.Logger) stores {
	if cfg.DB.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory forum store (development only)")
		return memoryStores()
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		if cfg.IsProduction() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory forum store", zap.Error(err))
		return memoryStores()
	}

	if err := migrations.Up(pool, log); err != nil {
		pool.Close()
		log.Error("apply migrations", zap.Error(err))
		_ = log.Sync()
		run.Exit(1)
	}

	log.Info("forum store: postgres")
	return postgresStores(pool)
}

func memoryStores() stores {
	mem := store.NewMemoryDB(store.Options{})
	users := store.NewInMemoryUserStore(mem)
	return stores{
		threads:  store.NewInMemoryThreadStore(mem),
		comments: store.NewInMemoryCommentStore(mem),
		replies:  store.NewInMemoryReplyStore(mem),
		users:    users,
		sessions: users,
	}
}

func postgresStores(pool *pgxpool.Pool) stores {
	users := store.NewPostgresUserStore(pool, store.Options{})
	return stores{
		threads:  store.NewPostgresThreadStore(pool, store.Options{}),
		comments: store.NewPostgresCommentStore(pool, store.Options{}),
		replies:  store.NewPostgresReplyStore(pool, store.Options{}),
		users:    users,
		sessions: users,
		ready: func() error {
			return pool.Ping(context.Background())
		},
		close: pool.Close,
	}
}
