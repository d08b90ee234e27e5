package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/games/binsort"
	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/reward"
)

const maxBodyBytes = 64 << 10

type ctxKey struct{}

// eventKinds maps wire names to input events.
var eventKinds = map[string]binsort.EventKind{
	"move_left":  binsort.EventMoveLeft,
	"move_right": binsort.EventMoveRight,
	"hold_left":  binsort.EventHoldLeft,
	"hold_right": binsort.EventHoldRight,
	"release":    binsort.EventRelease,
	"drag":       binsort.EventDrag,
	"pause":      binsort.EventPause,
}

type createRequest struct {
	Variant string `json:"variant"`
	Name    string `json:"name"`
}

type createResponse struct {
	ID    string        `json:"id"`
	Game  string        `json:"game"`
	Frame binsort.Frame `json:"frame"`
}

type startRequest struct {
	Name string `json:"name"`
}

type eventJSON struct {
	Kind  string  `json:"kind"`
	Boost bool    `json:"boost"`
	DX    float64 `json:"dx"`
}

type eventsRequest struct {
	Events []eventJSON `json:"events"`
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type rewardRequest struct {
	Email string `json:"email"`
}

type rewardResponse struct {
	Coupon string `json:"coupon"`
}

type scoreJSON struct {
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	BestCombo int       `json:"best_combo"`
	Level     int       `json:"level"`
	Date      time.Time `json:"date"`
}

type variantJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// sessionCtx resolves the {id} URL parameter into a session.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.Session(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *Session {
	sess, _ := r.Context().Value(ctxKey{}).(*Session)
	return sess
}

func (s *Server) listVariants(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]variantJSON, len(games))
	for i, g := range games {
		out[i] = variantJSON{ID: g.ID, Title: g.Title}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) topScores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown game %q", gameID))
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	scores, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("could not read scores", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not read scores")
		return
	}

	out := make([]scoreJSON, len(scores))
	for i, e := range scores {
		out[i] = scoreJSON{Player: e.PlayerName, Score: e.Score, BestCombo: e.BestCombo, Level: e.Level, Date: e.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	v, err := config.ParseVariant(req.Variant)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := s.CreateSession(v)
	if req.Name != "" {
		var startErr error
		sess.with(func(g *binsort.Game) { startErr = g.Start(req.Name) })
		if startErr != nil {
			s.RemoveSession(sess.ID)
			writeError(w, http.StatusBadRequest, startErr.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, createResponse{
		ID:    sess.ID,
		Game:  binsort.GameID(v),
		Frame: sess.Frame(),
	})
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Frame())
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := sessionFrom(r)
	var err error
	var f binsort.Frame
	sess.with(func(g *binsort.Game) {
		if err = g.Start(req.Name); err == nil {
			f = g.Frame()
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var err error
	var f binsort.Frame
	sess.with(func(g *binsort.Game) {
		if g.Run().Phase != binsort.PhaseGameOver {
			err = errors.New("the run is not over")
			return
		}
		if err = g.Restart(); err == nil {
			f = g.Frame()
		}
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	var req eventsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events := make([]binsort.Event, 0, len(req.Events))
	for _, e := range req.Events {
		kind, ok := eventKinds[e.Kind]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown event kind %q", e.Kind))
			return
		}
		events = append(events, binsort.Event{Kind: kind, Boost: e.Boost, DX: e.DX})
	}

	_, f := sessionFrom(r).advance(0, events)
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) resize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeError(w, http.StatusBadRequest, "width and height must be positive")
		return
	}

	var f binsort.Frame
	sessionFrom(r).with(func(g *binsort.Game) {
		g.ResizeField(req.Width, req.Height)
		f = g.Frame()
	})
	writeJSON(w, http.StatusOK, f)
}

// redeem asks the reward service for a coupon for the finished run. It
// never changes the game.
func (s *Server) redeem(w http.ResponseWriter, r *http.Request) {
	if s.rewards == nil {
		writeError(w, http.StatusServiceUnavailable, reward.ErrDisabled.Error())
		return
	}

	var req rewardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := sessionFrom(r)
	var run binsort.State
	var timeout time.Duration
	sess.with(func(g *binsort.Game) {
		run = g.Run()
		timeout = g.Config().Reward.Timeout
	})
	if run.Phase != binsort.PhaseGameOver {
		writeError(w, http.StatusConflict, "rewards are offered after the run ends")
		return
	}

	ctx := r.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	coupon, err := s.rewards.Redeem(ctx, req.Email, run.Score)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rewardResponse{Coupon: coupon})
	case errors.Is(err, reward.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reward.ErrNotEligible):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, reward.ErrDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Warn("reward request failed", "session", sess.ID, "error", err)
		writeError(w, http.StatusBadGateway, "reward service unavailable")
	}
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.RemoveSession(sessionFrom(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

// stream sends every published frame as a server-sent event.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sess := sessionFrom(r)
	sub := sess.hub.Subscribe()
	defer sess.hub.Unsubscribe(sub)

	if data, err := json.Marshal(sess.Frame()); err == nil {
		writeSSE(w, "frame", data)
		flusher.Flush()
	}

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-sub:
			if !ok {
				return
			}
			writeSSE(w, "frame", data)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, data []byte) {
	_, _ = w.Write([]byte("event: " + event + "\ndata: "))
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n\n"))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
