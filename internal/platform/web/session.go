package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/games/binsort"
)

// Session is one browser game. All access to the game goes through the
// session mutex; the driving loop and the handlers share it.
type Session struct {
	ID      string
	Variant config.Variant

	mu       sync.Mutex
	game     *binsort.Game
	lastSeen time.Time
	finished func(*Session, binsort.State)

	hub    *Hub
	cancel context.CancelFunc
	done   chan struct{}
}

// newSession creates a session waiting for a player name.
func newSession(v config.Variant, runtime core.RuntimeConfig, now time.Time) *Session {
	g := binsort.New(v)
	g.Reset(runtime)

	return &Session{
		ID:       uuid.NewString(),
		Variant:  v,
		game:     g,
		lastSeen: now,
		hub:      NewHub(),
		done:     make(chan struct{}),
	}
}

// with runs fn while holding the session lock.
func (s *Session) with(fn func(g *binsort.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.game)
}

// Frame returns the current render feed.
func (s *Session) Frame() binsort.Frame {
	var f binsort.Frame
	s.with(func(g *binsort.Game) { f = g.Frame() })
	return f
}

// advance runs the game for dt after applying events and publishes the
// new frame to stream subscribers.
func (s *Session) advance(dt time.Duration, events []binsort.Event) (binsort.Report, binsort.Frame) {
	s.mu.Lock()
	if events != nil {
		s.lastSeen = time.Now()
	}
	rep := s.game.Advance(dt, events)
	frame := s.game.Frame()
	var run binsort.State
	if rep.GameOver {
		run = s.game.Run()
	}
	s.mu.Unlock()

	if rep.GameOver && s.finished != nil {
		s.finished(s, run)
	}
	s.publish(frame)
	return rep, frame
}

// publish encodes the frame only when someone is listening.
func (s *Session) publish(frame binsort.Frame) {
	if s.hub.Len() == 0 {
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	s.hub.Publish(data)
}

// drive advances the game in real time until ctx is cancelled.
func (s *Session) drive(ctx context.Context, tickRate int) {
	defer close(s.done)

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.advance(dt, nil)
		}
	}
}

// idleSince reports when the session was last touched by a request.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// stop ends the driving loop and disconnects stream subscribers.
func (s *Session) stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.hub.Close()
}
