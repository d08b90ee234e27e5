// Package web hosts Bin Sort over HTTP. Each session owns a game driven
// in real time on the server; clients post input events and read the
// render feed as JSON, either polled or streamed with server-sent events.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/games/binsort"
	"github.com/vovakirdan/binsort/internal/reward"
	"github.com/vovakirdan/binsort/internal/storage"
)

// Config holds configuration for the HTTP host.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every session. Zero disables the
	// driving loop so callers advance sessions themselves.
	TickRate int

	// IdleTimeout removes sessions nobody has touched for this long.
	IdleTimeout time.Duration

	// Seed fixes the RNG seed of new sessions. Zero means time-based.
	Seed int64

	// ViewportW and ViewportH are the field size of new sessions.
	ViewportW float64
	ViewportH float64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		TickRate:    60,
		IdleTimeout: 10 * time.Minute,
		ViewportW:   800,
		ViewportH:   600,
	}
}

// Server is the HTTP host. It owns the sessions and their driving loops.
type Server struct {
	config  Config
	store   *storage.Store
	rewards reward.Client
	logger  *log.Logger
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]*Session
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a server. store and rewards may be nil.
func NewServer(cfg Config, store *storage.Store, rewards reward.Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ViewportW <= 0 || cfg.ViewportH <= 0 {
		cfg.ViewportW, cfg.ViewportH = DefaultConfig().ViewportW, DefaultConfig().ViewportH
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   cfg,
		store:    store,
		rewards:  rewards,
		logger:   logger,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes builds the router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))
			r.Get("/variants", s.listVariants)
			r.Get("/scores/{game}", s.topScores)
			r.Post("/sessions", s.createSession)
		})

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.sessionCtx)
			// Streams outlive the request timeout.
			r.Get("/stream", s.stream)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(15 * time.Second))
				r.Get("/frame", s.frame)
				r.Post("/start", s.start)
				r.Post("/restart", s.restart)
				r.Post("/events", s.events)
				r.Post("/resize", s.resize)
				r.Post("/reward", s.redeem)
				r.Delete("/", s.deleteSession)
			})
		})
	})

	return r
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// runtime returns the runtime config for a new session.
func (s *Server) runtime() core.RuntimeConfig {
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:   int(s.config.ViewportW / core.CellWidth),
		ScreenH:   int(s.config.ViewportH/core.CellHeight) + 1,
		TickRate:  s.config.TickRate,
		Seed:      seed,
		ViewportW: s.config.ViewportW,
		ViewportH: s.config.ViewportH,
	}
}

// CreateSession registers a new session and starts its driving loop.
func (s *Server) CreateSession(v config.Variant) *Session {
	sess := newSession(v, s.runtime(), time.Now())
	sess.finished = s.logRun

	if s.store != nil {
		var err error
		sess.with(func(g *binsort.Game) { err = g.AttachStore(s.store) })
		if err != nil {
			s.logger.Warn("could not load high scores", "session", sess.ID, "error", err)
		}
	}

	if s.config.TickRate > 0 {
		ctx, cancel := context.WithCancel(s.ctx)
		sess.cancel = cancel
		go sess.drive(ctx, s.config.TickRate)
	} else {
		close(sess.done)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session created", "session", sess.ID, "variant", v)
	return sess
}

// Session returns a session by ID.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// RemoveSession stops and forgets a session.
func (s *Server) RemoveSession(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.stop()
		s.logger.Info("session closed", "session", id)
	}
	return ok
}

// Reap removes sessions idle since before now-IdleTimeout and returns how
// many were removed.
func (s *Server) Reap(now time.Time) int {
	if s.config.IdleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	var stale []string
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.config.IdleTimeout {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		s.RemoveSession(id)
	}
	return len(stale)
}

// logRun appends a finished run to the score log.
func (s *Server) logRun(sess *Session, run binsort.State) {
	s.logger.Info("run finished",
		"session", sess.ID,
		"player", run.Player,
		"score", run.Score,
		"level", run.Level,
		"reason", run.Reason,
	)
	if s.store == nil || run.Score <= 0 {
		return
	}
	if _, err := s.store.SaveRun(storage.Run{
		GameID:     binsort.GameID(sess.Variant),
		PlayerName: run.Player,
		Score:      run.Score,
		BestCombo:  run.BestCombo,
		Level:      run.Level,
	}); err != nil {
		s.logger.Error("could not save run", "session", sess.ID, "error", err)
	}
}

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.janitor(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// janitor reaps idle sessions until ctx is cancelled.
func (s *Server) janitor(ctx context.Context) {
	if s.config.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(s.config.IdleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Reap(now); n > 0 {
				s.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}

// Close stops every session.
func (s *Server) Close() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.RemoveSession(id)
	}
	s.cancel()
}
