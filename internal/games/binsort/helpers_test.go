package binsort

import (
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
)

var testClock = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// testRuntime is an 800x600 field, so the bin top is at 510 and the
// collection band spans [480, 540].
func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   80,
		ScreenH:   31,
		TickRate:  60,
		Seed:      seed,
		ViewportW: 800,
		ViewportH: 600,
	}
}

// newStartedGame returns a playing classic game with optional config changes.
func newStartedGame(t *testing.T, mutate func(*config.BinSortConfig)) *Game {
	t.Helper()
	cfg := config.DefaultBinSortConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(config.VariantClassic)
	g.ResetWith(cfg, testRuntime(42))
	g.SetClock(func() time.Time { return testClock })
	if err := g.Start("tester"); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return g
}

// dropItem places an item directly into the field.
func dropItem(g *Game, c Category, x, y float64) string {
	id := fmt.Sprintf("test-%d", len(g.state.Items)+g.state.Spawned+1000*int(g.tick))
	for g.hasItem(id) {
		id += "x"
	}
	g.state.Items = append(g.state.Items, Item{ID: id, Kind: KindsOf(c)[0], X: x, Y: y})
	return id
}

func (g *Game) hasItem(id string) bool {
	for _, it := range g.state.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// frame is one frame interval at the default configuration.
const frame = 16 * time.Millisecond

// memKV is an in-memory KeyValue.
type memKV struct {
	data    map[string][]byte
	failPut error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memKV) Put(key string, value []byte) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}
