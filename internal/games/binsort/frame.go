package binsort

import "github.com/vovakirdan/binsort/internal/core"

// Frame is the render feed handed to presentation hosts after each
// update. Positions are in field units.
type Frame struct {
	Phase  string `json:"phase"`
	Paused bool   `json:"paused"`
	Player string `json:"player,omitempty"`

	Field FrameField  `json:"field"`
	Bin   FrameBin    `json:"bin"`
	Items []FrameItem `json:"items"`

	Score     int     `json:"score"`
	Lives     int     `json:"lives"`
	Combo     int     `json:"combo"`
	BestCombo int     `json:"best_combo"`
	Level     int     `json:"level"`
	DropSpeed float64 `json:"drop_speed"`
	SpawnMS   int64   `json:"spawn_interval_ms"`

	Reason     string     `json:"reason,omitempty"`
	Flash      FrameFlash `json:"flash"`
	HighScores []Entry    `json:"high_scores"`
}

// FrameField is the play field size.
type FrameField struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FrameBin is the bin as seen by the renderer.
type FrameBin struct {
	X        float64    `json:"x"`
	Width    float64    `json:"width"`
	TopY     float64    `json:"top_y"`
	Category Category   `json:"category"`
	Color    core.Color `json:"color"`
}

// FrameItem is one falling item as seen by the renderer.
type FrameItem struct {
	ID        string     `json:"id"`
	Category  Category   `json:"category"`
	Color     core.Color `json:"color"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Collected bool       `json:"collected"`
	Removing  bool       `json:"removing"`
}

// FrameFlash tells the renderer which HUD values to highlight.
type FrameFlash struct {
	Score bool `json:"score"`
	Life  bool `json:"life"`
}

// Frame returns the current render feed.
func (g *Game) Frame() Frame {
	s := &g.state
	items := make([]FrameItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, FrameItem{
			ID:        it.ID,
			Category:  it.Category(),
			Color:     it.Category().Color(),
			Name:      it.Kind.Name,
			Icon:      it.Kind.Icon,
			X:         it.X,
			Y:         it.Y,
			Collected: it.Collected,
			Removing:  it.PendingRemoval,
		})
	}

	return Frame{
		Phase:  s.Phase.String(),
		Paused: s.Paused,
		Player: s.Player,
		Field:  FrameField{Width: s.FieldW, Height: s.FieldH},
		Bin: FrameBin{
			X:        s.Bin.X,
			Width:    s.Bin.Width,
			TopY:     BinTopY(s.FieldH, g.cfg.Bin),
			Category: s.Bin.Category,
			Color:    s.Bin.Category.Color(),
		},
		Items:      items,
		Score:      s.Score,
		Lives:      s.Lives,
		Combo:      s.Combo,
		BestCombo:  s.BestCombo,
		Level:      s.Level,
		DropSpeed:  s.DropSpeed,
		SpawnMS:    s.SpawnInterval.Milliseconds(),
		Reason:     s.Reason,
		Flash:      FrameFlash{Score: s.ScoreFlash > 0, Life: s.LifeFlash > 0},
		HighScores: g.board.Entries(),
	}
}
