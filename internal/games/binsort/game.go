// Package binsort implements the bin sorting arcade game: waste items fall
// from the top of the field and the player moves a bin to catch only the
// items of the currently assigned category.
package binsort

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/registry"
)

// flashDuration is how long score and life indicators stay highlighted.
const flashDuration = 500 * time.Millisecond

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game is one bin sorting session. It is not safe for concurrent use;
// hosts drive it from a single loop.
type Game struct {
	variant config.Variant

	cfg     config.BinSortConfig
	curve   *config.Curve
	runtime core.RuntimeConfig
	rng     *rand.Rand
	sched   *Scheduler
	spawner *Spawner

	board *Board
	store KeyValue
	now   func() time.Time

	state  State
	tick   uint64
	report Report // Accumulated by the current Advance call
	last   Report // Result of the last Step
}

// New creates a game for a rule variant. Call Reset before use.
func New(variant config.Variant) *Game {
	return &Game{variant: variant, now: time.Now}
}

// GameID returns the registry identifier of a variant.
func GameID(v config.Variant) string {
	if v == config.VariantClassic {
		return "binsort"
	}
	return "binsort_" + string(v)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.variant {
	case config.VariantRotating:
		return "Bin Sort (Rotating)"
	case config.VariantSudden:
		return "Bin Sort (Sudden Death)"
	default:
		return "Bin Sort"
	}
}

// Description summarizes the rules of the variant.
func (g *Game) Description() string {
	switch g.variant {
	case config.VariantRotating:
		return "The target bin changes as you level up"
	case config.VariantSudden:
		return "No spare lives, the first mistake ends the run"
	default:
		return "Catch one kind of waste, let the rest fall"
	}
}

// Variant returns the rule variant of this game.
func (g *Game) Variant() config.Variant {
	return g.variant
}

// Reset loads the configuration, applies the variant and any preset,
// and returns the game to the name entry phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBinSort(configPath)
	if err != nil {
		cfg = config.Validate(config.DefaultBinSortConfig())
	}
	config.ApplyVariant(&cfg, g.variant)
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.ResetWith(cfg, runtime)
}

// ResetWith resets the game with an explicit configuration.
func (g *Game) ResetWith(cfg config.BinSortConfig, runtime core.RuntimeConfig) {
	g.cfg = config.Validate(cfg)
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, seeded for replays
	g.curve = config.NewCurve(g.cfg.Difficulty, g.cfg.Spawn)
	g.sched = NewScheduler()
	g.spawner = NewSpawner(g.cfg.Spawn, g.curve, g.cfg.Items.Size)
	g.board = NewBoard(g.cfg.HighScores.Limit)
	if g.store != nil {
		_ = g.board.Load(g.store, g.BoardKey())
	}
	if g.now == nil {
		g.now = time.Now
	}

	g.state = State{
		Phase:         PhaseIdle,
		Lives:         g.cfg.Rules.InitialLives,
		Level:         1,
		DropSpeed:     g.curve.DropSpeed(1),
		SpawnInterval: g.curve.SpawnInterval(1),
		Bin:           Bin{Width: g.cfg.Bin.Width, Category: randomCategory(g.rng)},
		Processed:     make(map[string]struct{}),
	}
	w, h := runtime.Viewport()
	g.ResizeField(w, h)
	g.state.Bin.Center(g.state.FieldW)
	g.tick = 0
	g.last = Report{}
}

// Start begins a run for the named player. The name is trimmed,
// upper-cased and cut to the configured length. A blank name returns
// ErrEmptyName and leaves the game untouched.
func (g *Game) Start(player string) error {
	name := normalizeName(player, g.cfg.Rules.NameLimit)
	if name == "" {
		return ErrEmptyName
	}

	g.sched.CancelAll()
	g.spawner.Reset()

	prev := g.state
	g.state = State{
		Phase:         PhasePlaying,
		Player:        name,
		Lives:         g.cfg.Rules.InitialLives,
		Level:         1,
		DropSpeed:     g.curve.DropSpeed(1),
		SpawnInterval: g.curve.SpawnInterval(1),
		Bin:           Bin{Width: g.cfg.Bin.Width, Category: randomCategory(g.rng)},
		Processed:     make(map[string]struct{}),
		FieldW:        prev.FieldW,
		FieldH:        prev.FieldH,
	}
	g.state.Bin.Center(g.state.FieldW)

	g.sched.After(TimerSpawn, g.state.SpawnInterval)
	if g.curve.IsEnabled() {
		g.sched.Every(TimerDifficulty, g.curve.Interval())
	}
	return nil
}

// Restart begins a new run for the current player.
func (g *Game) Restart() error {
	return g.Start(g.state.Player)
}

// normalizeName trims, upper-cases and truncates a player name.
func normalizeName(name string, limit int) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	runes := []rune(name)
	if limit > 0 && len(runes) > limit {
		name = strings.TrimSpace(string(runes[:limit]))
	}
	return name
}

// Resize adapts the field to a new terminal size.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	g.runtime.ViewportW = runtime.ViewportW
	g.runtime.ViewportH = runtime.ViewportH
	g.ResizeField(g.runtime.Viewport())
}

// ResizeField sets the viewport size in field units. The field width is
// capped at the design width. The bin and falling items are pulled back
// inside a narrower field so every item stays catchable.
func (g *Game) ResizeField(w, h float64) {
	if w <= 0 {
		w = g.cfg.Field.MaxWidth
	}
	if h <= 0 {
		h = w
	}
	g.state.FieldW = math.Min(w, g.cfg.Field.MaxWidth)
	g.state.FieldH = h
	g.state.Bin.Clamp(g.state.FieldW)

	lo, hi := g.cfg.Items.Size, g.state.FieldW-g.cfg.Items.Size
	if hi < lo {
		lo, hi = g.state.FieldW/2, g.state.FieldW/2
	}
	for i := range g.state.Items {
		if it := &g.state.Items[i]; !it.Collected {
			it.X = core.ClampF(it.X, lo, hi)
		}
	}
}

// SetClock replaces the wall clock used to date high-score entries.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

// AttachStore loads the high-score list from kv and commits every
// finished run there.
func (g *Game) AttachStore(kv KeyValue) error {
	g.store = kv
	if g.board == nil {
		return nil
	}
	return g.board.Load(kv, g.BoardKey())
}

// BoardKey returns the persistence key of this variant's high scores.
func (g *Game) BoardKey() string {
	key := g.cfg.HighScores.Key
	if key == "" {
		key = config.DefaultBinSortConfig().HighScores.Key
	}
	if g.variant == config.VariantClassic {
		return key
	}
	return key + "." + string(g.variant)
}

// Advance runs the game for dt of simulated time after applying the
// input events. Long intervals are split into frame-sized updates so
// no item can skip over the collection band.
func (g *Game) Advance(dt time.Duration, events []Event) Report {
	g.report = Report{}
	s := &g.state
	if s.Phase != PhasePlaying {
		return g.report
	}

	for _, ev := range events {
		g.apply(ev)
	}
	if s.Paused {
		return g.report
	}

	frame := g.cfg.Field.FrameInterval
	for dt > 0 && s.Phase == PhasePlaying {
		step := min(dt, frame)
		g.update(step)
		dt -= step
	}
	return g.report
}

// apply handles one input event.
func (g *Game) apply(ev Event) {
	s := &g.state
	if ev.Kind == EventPause {
		s.Paused = !s.Paused
		return
	}
	if s.Paused {
		return
	}

	switch ev.Kind {
	case EventMoveLeft:
		s.Bin.Step(-1, ev.Boost, g.cfg.Bin, s.FieldW)
	case EventMoveRight:
		s.Bin.Step(1, ev.Boost, g.cfg.Bin, s.FieldW)
	case EventHoldLeft:
		s.Bin.Hold(-1, ev.Boost)
	case EventHoldRight:
		s.Bin.Hold(1, ev.Boost)
	case EventRelease:
		s.Bin.Hold(0, false)
	case EventDrag:
		s.Bin.Drag(ev.DX, g.cfg.Bin, s.FieldW)
	}
}

// update runs one frame: timers, bin drift, falling, then collisions.
func (g *Game) update(dt time.Duration) {
	s := &g.state
	s.Elapsed += dt
	g.sched.Advance(dt, g.fire)
	if s.Phase != PhasePlaying {
		return
	}

	frames := float64(dt) / float64(g.cfg.Field.FrameInterval)
	s.Bin.Drift(frames, g.cfg.Bin, s.FieldW)
	g.fall(frames)
	g.detect()

	s.ScoreFlash = max(s.ScoreFlash-dt, 0)
	s.LifeFlash = max(s.LifeFlash-dt, 0)
	g.tick++
}

// fire runs a timer callback. Callbacks do nothing once the run is over.
func (g *Game) fire(t Timer) {
	s := &g.state
	if s.Phase != PhasePlaying {
		return
	}

	switch t {
	case TimerSpawn:
		batch := g.spawner.Spawn(g.rng, s.Level, s.Bin.Category, s.FieldW)
		s.Items = append(s.Items, batch...)
		s.Spawned += len(batch)
		g.report.Spawned += len(batch)
		g.sched.After(TimerSpawn, s.SpawnInterval)
	case TimerDifficulty:
		g.levelUp()
	}
}

// levelUp raises the level and recomputes the difficulty parameters.
func (g *Game) levelUp() {
	s := &g.state
	s.Level++
	s.DropSpeed = g.curve.DropSpeed(s.Level)
	s.SpawnInterval = g.curve.SpawnInterval(s.Level)
	g.report.LevelUps++

	if g.curve.RotatesAt(s.Level) {
		s.Bin.Category = otherCategory(g.rng, s.Bin.Category)
		breakCombo(s, g.cfg.Scoring)
		g.report.Rotated = true
	}
}

// fall moves uncollected items down and prunes finished ones. A caught
// item stays one more update flagged for removal so hosts can fade it.
func (g *Game) fall(frames float64) {
	s := &g.state
	bottom := s.FieldH + g.cfg.Items.Size

	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.PendingRemoval {
			delete(s.Processed, it.ID)
			continue
		}
		if it.Collected {
			it.PendingRemoval = true
			kept = append(kept, it)
			continue
		}
		it.Y += s.DropSpeed * frames
		if it.Y > bottom && s.isProcessed(it.ID) {
			delete(s.Processed, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	s.Items = kept
}

// detect classifies every item against the bin and applies the outcomes.
func (g *Game) detect() {
	s := &g.state
	geo := NewGeometry(s.FieldH, s.Bin.X, g.cfg.Bin)

	for i := range s.Items {
		it := &s.Items[i]
		outcome := Classify(it, s.isProcessed(it.ID), s.Bin.Category, geo, g.cfg.Rules.WrongCollect)
		if outcome == OutcomeNone {
			continue
		}
		s.markProcessed(it.ID)
		res := Resolution{ItemID: it.ID, Outcome: outcome}

		switch outcome {
		case OutcomeCollected:
			it.Collected = true
			res.Points = collect(s, g.cfg.Scoring)
			s.ScoreFlash = flashDuration
			g.report.Resolutions = append(g.report.Resolutions, res)

		case OutcomeWrong:
			breakCombo(s, g.cfg.Scoring)
			g.report.Resolutions = append(g.report.Resolutions, res)
			g.endGame(fmt.Sprintf("Wrong item! %s is %s waste. You're collecting %s waste.",
				it.Kind.Name, it.Category(), s.Bin.Category))
			return

		case OutcomeMissed:
			breakCombo(s, g.cfg.Scoring)
			s.Lives = max(s.Lives-1, 0)
			s.LifeFlash = flashDuration
			g.report.Resolutions = append(g.report.Resolutions, res)
			if s.Lives <= 0 {
				g.endGame("Out of lives! Too many items missed.")
				return
			}

		case OutcomeDiscarded:
			g.report.Resolutions = append(g.report.Resolutions, res)
		}
	}
}

// endGame stops the run and records it on the board, merging with the
// stored list so runs finished by other sessions are kept.
func (g *Game) endGame(reason string) {
	s := &g.state
	g.sched.CancelAll()
	s.Phase = PhaseGameOver
	s.Paused = false
	s.Reason = reason
	s.Items = nil
	s.Processed = make(map[string]struct{})
	s.Bin.Hold(0, false)

	entry := Entry{Name: s.Player, Points: s.Score, Date: g.now()}
	if g.store == nil {
		g.board.Record(entry)
	} else if _, err := g.board.Commit(g.store, g.BoardKey(), entry); err != nil {
		g.report.SaveErr = err
	}
	g.report.GameOver = true
}

// Step advances the game by one platform tick, translating actions into
// events. Restart starts a new run for the same player after game over.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.state.Phase {
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			_ = g.Restart()
		}
		return core.StepResult{State: g.State()}
	case PhaseIdle:
		return core.StepResult{State: g.State()}
	}

	g.last = g.Advance(g.tickDuration(), g.eventsFrom(in))
	return core.StepResult{State: g.State()}
}

// LastReport returns what the most recent Step changed.
func (g *Game) LastReport() Report {
	return g.last
}

// tickDuration returns the simulated time covered by one Step.
func (g *Game) tickDuration() time.Duration {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// eventsFrom maps platform actions to game events.
func (g *Game) eventsFrom(in core.InputFrame) []Event {
	var events []Event
	if in.Has(core.ActionPause) {
		events = append(events, Event{Kind: EventPause})
	}
	boost := in.Has(core.ActionBoost)
	if in.Has(core.ActionLeft) {
		events = append(events, Event{Kind: EventMoveLeft, Boost: boost})
	}
	if in.Has(core.ActionRight) {
		events = append(events, Event{Kind: EventMoveRight, Boost: boost})
	}
	if in.PointerDX != 0 {
		events = append(events, Event{Kind: EventDrag, DX: in.PointerDX * g.layout().unitsPerCol})
	}
	return events
}

// State returns the current game state summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Lives:    g.state.Lives,
		Level:    g.state.Level,
		Idle:     g.state.Phase == PhaseIdle,
		GameOver: g.state.Phase == PhaseGameOver,
		Paused:   g.state.Paused,
	}
}

// Run returns a copy of the full run state.
func (g *Game) Run() State {
	s := g.state
	s.Items = append([]Item(nil), g.state.Items...)
	s.Processed = make(map[string]struct{}, len(g.state.Processed))
	for id := range g.state.Processed {
		s.Processed[id] = struct{}{}
	}
	return s
}

// Board returns the high-score list of this game.
func (g *Game) Board() *Board {
	return g.board
}

// Config returns the effective configuration.
func (g *Game) Config() config.BinSortConfig {
	return g.cfg
}

// Register the variants with the registry
func init() {
	for _, v := range config.Variants() {
		registry.Register(GameID(v), func() registry.Game {
			return New(v)
		})
	}
}
