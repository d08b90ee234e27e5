package binsort

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/binsort/internal/core"
)

// Visual characters for rendering
const (
	BandChar      = '·'
	CollectedChar = '✓'
	FadingChar    = '∙'
	BinLeftChar   = '\\'
	BinRightChar  = '/'
	BinFillChar   = '_'
	LifeChar      = '♥'
	WallChar      = '│'
)

// layout maps field units onto terminal cells. Row 0 holds the HUD.
type layout struct {
	left, cols  int // First column and width of the field in cells
	top, rows   int // First row and height of the field in cells
	unitsPerCol float64
	unitsPerRow float64
}

func (g *Game) layout() layout {
	s := &g.state
	screenW := max(g.runtime.ScreenW, 1)
	screenH := max(g.runtime.ScreenH, 2)

	cols := core.Clamp(int(s.FieldW/core.CellWidth), 1, screenW)
	rows := screenH - 1

	l := layout{
		left: (screenW - cols) / 2,
		cols: cols,
		top:  1,
		rows: rows,
	}
	l.unitsPerCol = s.FieldW / float64(cols)
	l.unitsPerRow = s.FieldH / float64(rows)
	if l.unitsPerRow <= 0 {
		l.unitsPerRow = core.CellHeight
	}
	return l
}

func (l layout) col(x float64) int {
	return l.left + core.Clamp(int(x/l.unitsPerCol), 0, l.cols-1)
}

func (l layout) row(y float64) int {
	return l.top + int(math.Floor(y/l.unitsPerRow))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	l := g.layout()

	g.renderHUD(dst)
	g.renderWalls(dst, l)
	g.renderBand(dst, l)
	g.renderItems(dst, l)
	g.renderBin(dst, l)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives, combo, level and the target category.
func (g *Game) renderHUD(dst *core.Screen) {
	s := &g.state

	scoreColor := core.ColorWhite
	if s.ScoreFlash > 0 {
		scoreColor = core.ColorBrightYellow
	}
	scoreText := fmt.Sprintf("Score: %d", s.Score)
	dst.DrawTextColored(1, 0, scoreText, scoreColor)
	x := len(scoreText) + 3

	livesColor := core.ColorRed
	if s.LifeFlash > 0 {
		livesColor = core.ColorBrightRed
	}
	livesText := "Lives: " + strings.Repeat(string(LifeChar), s.Lives)
	if s.Lives == 0 {
		livesText = "Lives: -"
	}
	dst.DrawTextColored(x, 0, livesText, livesColor)
	x += len([]rune(livesText)) + 2

	if s.Combo > 1 {
		comboText := fmt.Sprintf("Combo x%d", s.Combo)
		dst.DrawTextColored(x, 0, comboText, core.ColorCyan)
	}

	target := "Collect: " + strings.ToUpper(s.Bin.Category.String())
	levelText := fmt.Sprintf("Lv %d  ", s.Level)
	right := dst.Width() - len(target) - len(levelText) - 1
	dst.DrawText(right, 0, levelText)
	dst.DrawTextColored(right+len(levelText), 0, target, s.Bin.Category.Color())
}

// renderWalls marks the field edges when the terminal is wider than the field.
func (g *Game) renderWalls(dst *core.Screen, l layout) {
	if l.left == 0 {
		return
	}
	for y := l.top; y < l.top+l.rows; y++ {
		dst.SetColored(l.left-1, y, WallChar, core.ColorGray)
		dst.SetColored(l.left+l.cols, y, WallChar, core.ColorGray)
	}
}

// renderBand draws the bottom edge of the collection band.
func (g *Game) renderBand(dst *core.Screen, l layout) {
	if g.state.Phase != PhasePlaying {
		return
	}
	geo := NewGeometry(g.state.FieldH, g.state.Bin.X, g.cfg.Bin)
	dst.DrawHLine(l.left, l.row(geo.Band.Max), l.cols, BandChar, core.ColorGray)
}

// renderItems draws the falling items as colored category letters.
func (g *Game) renderItems(dst *core.Screen, l layout) {
	for _, it := range g.state.Items {
		y := l.row(it.Y)
		if y < l.top || y >= l.top+l.rows {
			continue
		}
		glyph := it.Category().Glyph()
		color := it.Category().Color()
		switch {
		case it.PendingRemoval:
			glyph, color = FadingChar, core.ColorGray
		case it.Collected:
			glyph, color = CollectedChar, core.ColorBrightGreen
		}
		dst.SetColored(l.col(it.X), y, glyph, color)
	}
}

// renderBin draws the bin on the row of its top edge.
func (g *Game) renderBin(dst *core.Screen, l layout) {
	s := &g.state
	width := max(int(s.Bin.Width/l.unitsPerCol), 3)
	x := l.col(s.Bin.X) - width/2
	y := core.Min(l.row(BinTopY(s.FieldH, g.cfg.Bin)), l.top+l.rows-1)
	color := s.Bin.Category.Color()

	dst.SetColored(x, y, BinLeftChar, color)
	dst.DrawHLine(x+1, y, width-2, BinFillChar, color)
	dst.SetColored(x+width-1, y, BinRightChar, color)

	label := strings.ToUpper(s.Bin.Category.String())
	if len(label) > width-2 {
		label = label[:1]
	}
	dst.DrawTextColored(x+(width-len(label))/2, y, label, color)
}

// renderOverlay draws the idle, paused and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := &g.state
	switch {
	case s.Phase == PhaseIdle:
		drawCenteredBox(dst, "BIN SORT", []string{
			"Catch only the waste of your bin's category.",
			"Enter your name to start",
		})

	case s.Phase == PhaseGameOver:
		lines := wrap(s.Reason, core.Max(dst.Width()-8, 20))
		lines = append(lines, "", fmt.Sprintf("%s scored %d  (best combo x%d)", s.Player, s.Score, s.BestCombo), "")
		for i, e := range g.board.Entries() {
			lines = append(lines, fmt.Sprintf("%2d. %-10s %6d", i+1, e.Name, e.Points))
		}
		lines = append(lines, "", "R restart  |  B menu")
		drawCenteredBox(dst, "GAME OVER", lines)

	case s.Paused:
		drawCenteredBox(dst, "PAUSED", []string{"Press P to resume"})
	}
}

// drawCenteredBox draws a centered message box with a title and lines.
func drawCenteredBox(dst *core.Screen, title string, lines []string) {
	boxW := len([]rune(title))
	for _, line := range lines {
		boxW = core.Max(boxW, len([]rune(line)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := core.Max((dst.Height()-boxH)/2, 0)

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	for i, line := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(line)))/2, boxY+3+i, line)
	}
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
