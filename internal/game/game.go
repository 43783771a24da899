// Package game drives the automap: it owns the tcell event loop and
// translates keyboard, mouse, and resize events into viewport operations.
package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"automap/internal/fixed"
	"automap/internal/level"
	"automap/internal/render"
	"automap/internal/viewport"
)

const (
	// panInc is how many frame-buffer pixels one pan key press moves the
	// window.
	panInc = 4
	// moveStep is the demo player's walk distance per key press, in 16.16
	// map units.
	moveStep = int64(8) << fixed.FracBits
	// turnStep is the demo player's turn per key press.
	turnStep = fixed.Ang45 / 8
	// playerRadius in 16.16 map units, bounds the closest zoom.
	playerRadius = int64(16) << fixed.FracBits
	// maxMarks caps the mark list; the glyphs are single digits.
	maxMarks = 10
)

// zoomStep is the per-keypress zoom factor applied to the
// map-units-per-pixel scale: zooming in divides, zooming out multiplies.
var zoomStep = fixed.FromFloat(1.02)

// Game runs the automap viewer over one level.
type Game struct {
	screen   tcell.Screen
	lvl      *level.Level
	view     *viewport.Viewport
	renderer *render.Renderer

	player viewport.MapPoint
	facing fixed.Angle

	overlay bool // automap visible
	follow  bool // viewport tracks the player each move
	grid    bool
	marks   []viewport.MapPoint
	message string

	dragging               bool
	lastMouseX, lastMouseY int
}

// New creates a Game with its own terminal screen.
func New() (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen creates a Game on an already-initialized screen. The caller
// keeps ownership of the screen on error; Run finalizes it.
func NewWithScreen(screen tcell.Screen) (*Game, error) {
	screen.EnableMouse()

	lvl := level.Demo()
	g := &Game{
		screen:  screen,
		lvl:     lvl,
		player:  viewport.MapPoint(lvl.PlayerStart),
		facing:  fixed.Ang90, // facing north
		overlay: true,
		follow:  true,
	}

	w, h := screen.Size()
	if h > render.HUDRows {
		h -= render.HUDRows
	}
	v, err := viewport.New(g.player.X, g.player.Y, w, h, g.fitScale(w, h))
	if err != nil {
		return nil, fmt.Errorf("create viewport: %w", err)
	}
	g.view = v
	g.view.SetAngle(g.facing - fixed.Ang90)
	g.renderer = render.NewRenderer(screen, v)
	g.message = "Tab map  arrows pan  +/- zoom  f follow  r rotate  g grid  m mark  q quit"
	return g, nil
}

// Run is the main loop: draw, poll, dispatch, until quit.
func (g *Game) Run() {
	defer g.screen.Fini()

	for {
		g.draw()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			g.handleResize()
		case *tcell.EventMouse:
			g.handleMouse(ev)
		case *tcell.EventKey:
			action := keyToAction(ev)
			if action == ActionQuit {
				return
			}
			g.handleAction(action)
		}
	}
}

// draw renders the current frame: the automap when the overlay is open,
// otherwise a placeholder for the game view underneath.
func (g *Game) draw() {
	if !g.overlay {
		g.screen.Clear()
		g.renderer.DrawHUD("[game view]  Tab opens the automap", g.message)
		return
	}
	g.renderer.DrawFrame(g.lvl, g.player, g.facing, g.marks, g.grid)
	status := fmt.Sprintf("%s  scale %d  follow:%s rotate:%s grid:%s  marks:%d",
		g.lvl.Name, g.view.ScaleFrameToMap(),
		onOff(g.follow), onOff(g.view.Rotate()), onOff(g.grid), len(g.marks))
	g.renderer.DrawHUD(status, g.message)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// handleResize re-derives the scale factors for the new window size,
// keeping the focal point.
func (g *Game) handleResize() {
	w, h := g.renderer.ViewSize()
	scale := g.clampScale(g.view.ScaleFrameToMap(), w, h)
	if err := g.view.ActivateNewScale(w, h, scale); err != nil {
		g.message = err.Error()
	}
}

// handleAction dispatches one keyboard action.
func (g *Game) handleAction(action Action) {
	switch action {
	case ActionPanN:
		g.pan(0, 1)
	case ActionPanS:
		g.pan(0, -1)
	case ActionPanE:
		g.pan(1, 0)
	case ActionPanW:
		g.pan(-1, 0)

	case ActionZoomIn:
		g.zoom(func(s fixed.Fixed) fixed.Fixed { return fixed.Div(s, zoomStep) })
	case ActionZoomOut:
		g.zoom(func(s fixed.Fixed) fixed.Fixed { return fixed.Mul(s, zoomStep) })
	case ActionZoomFit:
		w, h := g.renderer.ViewSize()
		if err := g.view.ActivateNewScale(w, h, g.fitScale(w, h)); err != nil {
			g.message = err.Error()
		}

	case ActionToggleFollow:
		g.follow = !g.follow
		if g.follow {
			g.view.FollowPlayer(g.player.X, g.player.Y)
			g.message = "follow mode on"
		} else {
			g.message = "follow mode off"
		}

	case ActionToggleRotate:
		// The rotate flag only changes through an explicit window change.
		if err := g.view.ChangeWindowLocation(!g.view.Rotate(), g.view.Rect()); err != nil {
			g.message = err.Error()
			return
		}
		g.message = "rotate " + onOff(g.view.Rotate())

	case ActionToggleGrid:
		g.grid = !g.grid

	case ActionAddMark:
		if len(g.marks) >= maxMarks {
			g.marks = g.marks[1:]
		}
		g.marks = append(g.marks, g.view.Center())
		g.message = fmt.Sprintf("marked spot %d", len(g.marks)-1)
	case ActionClearMarks:
		g.marks = nil
		g.message = "marks cleared"

	case ActionPrintRect:
		g.message = g.view.String()

	case ActionToggleOverlay:
		g.toggleOverlay()

	case ActionForward:
		g.walk(1)
	case ActionBackward:
		g.walk(-1)
	case ActionTurnLeft:
		g.turn(1)
	case ActionTurnRight:
		g.turn(-1)
	}
}

// pan moves the window by panInc frame pixels in the given direction.
// Panning takes the view out of follow mode.
func (g *Game) pan(dx, dy int64) {
	if !g.overlay {
		return
	}
	g.follow = false
	step := int64(panInc) * int64(g.view.ScaleFrameToMap())
	g.view.UpdatePanning(dx*step, dy*step, 0, 0)
}

// handleMouse implements grab-drag panning with the primary button.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 {
		g.dragging = false
		return
	}
	if !g.dragging {
		g.dragging = true
		g.lastMouseX, g.lastMouseY = x, y
		return
	}
	dx, dy := x-g.lastMouseX, y-g.lastMouseY
	g.lastMouseX, g.lastMouseY = x, y
	if !g.overlay || (dx == 0 && dy == 0) {
		return
	}
	// Dragging grabs the map: moving the pointer right pulls the window
	// west. Screen Y grows downward, map Y upward.
	g.follow = false
	scale := int64(g.view.ScaleFrameToMap())
	g.view.UpdatePanning(0, 0, int64(-dx)*scale, int64(dy)*scale)
}

// zoom rescales around the focal point, clamped between the closest useful
// zoom and the whole level.
func (g *Game) zoom(apply func(fixed.Fixed) fixed.Fixed) {
	if !g.overlay {
		return
	}
	w, h := g.renderer.ViewSize()
	scale := g.clampScale(apply(g.view.ScaleFrameToMap()), w, h)
	if err := g.view.ActivateNewScale(w, h, scale); err != nil {
		g.message = err.Error()
	}
}

// fitScale returns the map-units-per-pixel scale that shows the whole
// level in a w×h view.
func (g *Game) fitScale(w, h int) fixed.Fixed {
	b := g.lvl.Bounds()
	scale := b.Width() / int64(w)
	if s := b.Height() / int64(h); s > scale {
		scale = s
	}
	if scale < 1 {
		scale = 1
	}
	return fixed.Fixed(scale)
}

// clampScale bounds a scale between a 2-player-radius close-up and the
// full-level zoom-out.
func (g *Game) clampScale(scale fixed.Fixed, w, h int) fixed.Fixed {
	min := fixed.Fixed(2 * playerRadius / int64(h))
	if min < 1 {
		min = 1
	}
	max := g.fitScale(w, h)
	if scale < min {
		return min
	}
	if scale > max {
		return max
	}
	return scale
}

// walk moves the demo player along its facing. In follow mode the window
// tracks the move.
func (g *Game) walk(dir int64) {
	g.player.X += dir * (moveStep * int64(fixed.Cos(g.facing)) >> fixed.FracBits)
	g.player.Y += dir * (moveStep * int64(fixed.Sin(g.facing)) >> fixed.FracBits)
	if g.follow {
		g.view.FollowPlayer(g.player.X, g.player.Y)
	}
}

// turn rotates the demo player and re-derives the viewport's pan angle.
func (g *Game) turn(dir int) {
	if dir > 0 {
		g.facing += turnStep
	} else {
		g.facing -= turnStep
	}
	g.view.SetAngle(g.facing - fixed.Ang90)
}

// toggleOverlay closes or reopens the automap. Closing saves the window so
// reopening restores the zoom and shape, re-synced to the player.
func (g *Game) toggleOverlay() {
	if g.overlay {
		g.view.SaveRect()
		g.overlay = false
		g.message = "automap closed"
		return
	}
	g.overlay = true
	g.view.RestoreRect(g.player.X, g.player.Y)
	g.message = "automap open"
}
