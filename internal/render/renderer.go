// Package render rasterizes the automap into a tcell screen: clipped wall
// lines, the blockmap grid, mark glyphs, and the player arrow, plus the
// status line at the bottom.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"automap/internal/fixed"
	"automap/internal/level"
	"automap/internal/viewport"
)

// HUDRows is the number of screen rows reserved below the map view.
const HUDRows = 2

// gridSize is the map-space spacing of the overlay grid, in 16.16 units.
const gridSize = int64(128) << fixed.FracBits

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDoor   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGrid   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleArrow  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMark   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMsg    = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
)

// Renderer draws automap frames for one viewport onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	view   *viewport.Viewport
}

// NewRenderer creates a Renderer drawing the given viewport onto screen.
func NewRenderer(screen tcell.Screen, view *viewport.Viewport) *Renderer {
	return &Renderer{screen: screen, view: view}
}

// ViewSize returns the frame-buffer extent available to the map, i.e. the
// screen minus the HUD rows.
func (r *Renderer) ViewSize() (w, h int) {
	w, h = r.screen.Size()
	h -= HUDRows
	if h < 1 {
		h = 1
	}
	return w, h
}

// DrawFrame renders one automap frame: grid, level lines, marks, and the
// player arrow. The screen is cleared but not shown; DrawHUD completes the
// frame.
func (r *Renderer) DrawFrame(lvl *level.Level, player viewport.MapPoint, facing fixed.Angle, marks []viewport.MapPoint, grid bool) {
	r.screen.Clear()

	if grid {
		r.drawGrid()
	}
	for _, ln := range lvl.Lines {
		if ln.Kind == level.KindHidden {
			continue
		}
		style := styleWall
		if ln.Kind == level.KindDoor {
			style = styleDoor
		}
		r.drawMapLine(viewport.MapPoint{X: ln.A.X, Y: ln.A.Y}, viewport.MapPoint{X: ln.B.X, Y: ln.B.Y}, '█', style)
	}
	for i, m := range marks {
		r.drawMark(i, m)
	}
	for _, seg := range arrowLines(player, facing) {
		r.drawMapLine(seg[0], seg[1], '█', styleArrow)
	}
}

// DrawHUD renders the status and message rows and flips the frame.
func (r *Renderer) DrawHUD(status, message string) {
	_, h := r.screen.Size()
	r.drawText(0, h-2, status, styleStatus)
	r.drawText(0, h-1, message, styleMsg)
	r.screen.Show()
}

// drawGrid draws vertical and horizontal grid lines across the visible
// rect, aligned to multiples of gridSize from the world origin.
func (r *Renderer) drawGrid() {
	rect := r.view.Rect()

	for x := floorTo(rect.MinX, gridSize); x < rect.MaxX; x += gridSize {
		r.drawMapLine(viewport.MapPoint{X: x, Y: rect.MinY}, viewport.MapPoint{X: x, Y: rect.MaxY}, '·', styleGrid)
	}
	for y := floorTo(rect.MinY, gridSize); y < rect.MaxY; y += gridSize {
		r.drawMapLine(viewport.MapPoint{X: rect.MinX, Y: y}, viewport.MapPoint{X: rect.MaxX, Y: y}, '·', styleGrid)
	}
}

// floorTo rounds v down to a multiple of step.
func floorTo(v, step int64) int64 {
	m := v % step
	if m < 0 {
		m += step
	}
	return v - m
}

// drawMark draws the n-th mark glyph at map point m.
func (r *Renderer) drawMark(n int, m viewport.MapPoint) {
	fx, fy, ok := r.mapToFrame(m)
	if !ok {
		return
	}
	glyph := fmt.Sprintf("%d", n%10)
	r.putGlyph(fx, fy, glyph, styleMark)
}

// drawMapLine transforms a map segment to frame space, clips it, and plots
// it cell by cell.
func (r *Renderer) drawMapLine(a, b viewport.MapPoint, ch rune, style tcell.Style) {
	x0, y0, _ := r.mapToFrame(a)
	x1, y1, _ := r.mapToFrame(b)

	w, h := r.ViewSize()
	cx0, cy0, cx1, cy1, ok := clipLine(x0, y0, x1, y1, w, h)
	if !ok {
		return
	}
	plotLine(cx0, cy0, cx1, cy1, func(x, y int) {
		r.screen.SetContent(x, y, ch, nil, style)
	})
}

// mapToFrame converts a map point to frame-buffer coordinates, rotating it
// around the view center first when the rotate flag is on. The frame Y axis
// grows downward while map Y grows upward, so Y is flipped. in reports
// whether the cell lies inside the view.
func (r *Renderer) mapToFrame(p viewport.MapPoint) (fx, fy int, in bool) {
	if r.view.Rotate() {
		// Inverse of the pan convention: world space is rotated by the
		// negated view angle for display.
		p = rotateAbout(p, r.view.Center(), -r.view.Angle())
	}
	rect := r.view.Rect()
	inv := r.view.ScaleMapToFrame()
	w, h := r.ViewSize()

	fx = mtof(p.X-rect.MinX, inv)
	fy = h - 1 - mtof(p.Y-rect.MinY, inv)
	in = fx >= 0 && fx < w && fy >= 0 && fy < h
	return fx, fy, in
}

// mtof scales a map distance to frame pixels: both operands carry 16
// fraction bits, so the product drops 32.
func mtof(v int64, scale fixed.Fixed) int {
	return int((v * int64(scale)) >> (2 * fixed.FracBits))
}

// rotateAbout rotates p around the pivot by angle a.
func rotateAbout(p, pivot viewport.MapPoint, a fixed.Angle) viewport.MapPoint {
	sin := int64(fixed.Sin(a))
	cos := int64(fixed.Cos(a))
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return viewport.MapPoint{
		X: pivot.X + ((dx*cos - dy*sin) >> fixed.FracBits),
		Y: pivot.Y + ((dx*sin + dy*cos) >> fixed.FracBits),
	}
}

// drawText writes a string, advancing by display width so wide runes do
// not overlap their neighbors.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range text {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji), padding the
// second column of wide glyphs to avoid artifacts.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
