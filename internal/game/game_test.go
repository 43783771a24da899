package game

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"automap/internal/fixed"
)

// newTestGame creates a Game on an initialized 80×24 simulation screen.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(80, 24)
	if err := ss.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	g, err := NewWithScreen(ss)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	return g
}

func TestNewCentersOnPlayerStart(t *testing.T) {
	g := newTestGame(t)

	x, y, w, h := g.view.GetRect()
	if w <= 0 || h <= 0 {
		t.Fatalf("degenerate rect %dx%d", w, h)
	}
	if cx, cy := x+w/2, y+h/2; cx != g.player.X || cy != g.player.Y {
		t.Errorf("view center (%d,%d), player at (%d,%d)", cx, cy, g.player.X, g.player.Y)
	}
	if !g.follow || !g.overlay {
		t.Error("game must start in follow mode with the overlay open")
	}
}

func TestPanLeavesFollowAndShiftsRect(t *testing.T) {
	g := newTestGame(t)
	before := g.view.Rect()

	g.handleAction(ActionPanE)

	if g.follow {
		t.Error("panning must leave follow mode")
	}
	step := int64(panInc) * int64(g.view.ScaleFrameToMap())
	if got := g.view.Rect(); got.MinX != before.MinX+step || got.MinY != before.MinY {
		t.Errorf("rect moved to (%d,%d), want (%d,%d)", got.MinX, got.MinY, before.MinX+step, before.MinY)
	}
}

func TestPanIgnoredWhileOverlayClosed(t *testing.T) {
	g := newTestGame(t)
	g.handleAction(ActionToggleOverlay) // close
	before := g.view.Rect()

	g.handleAction(ActionPanN)

	if g.view.Rect() != before {
		t.Error("pan applied while the overlay is closed")
	}
}

func TestZoomInShrinksWindow(t *testing.T) {
	g := newTestGame(t)
	// Start from full-level fit, which is the zoom-out clamp.
	g.handleAction(ActionZoomFit)
	_, _, w0, _ := g.view.GetRect()

	g.handleAction(ActionZoomIn)
	_, _, w1, _ := g.view.GetRect()
	if w1 >= w0 {
		t.Errorf("zoom in widened the window: %d -> %d", w0, w1)
	}

	g.handleAction(ActionZoomOut)
	g.handleAction(ActionZoomOut)
	_, _, w2, _ := g.view.GetRect()
	if w2 > w0 {
		t.Errorf("zoom out escaped the full-level clamp: %d > %d", w2, w0)
	}
}

func TestZoomInClampsAtCloseUp(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 500; i++ {
		g.handleAction(ActionZoomIn)
	}
	_, h := g.renderer.ViewSize()
	min := fixed.Fixed(2 * playerRadius / int64(h))
	if got := g.view.ScaleFrameToMap(); got < min {
		t.Errorf("scale %d below the close-up clamp %d", got, min)
	}
}

func TestWalkInFollowModeTracksPlayer(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 5; i++ {
		g.handleAction(ActionForward)
	}

	x, y, w, h := g.view.GetRect()
	if cx, cy := x+w/2, y+h/2; cx != g.player.X || cy != g.player.Y {
		t.Errorf("follow mode lost the player: center (%d,%d), player (%d,%d)", cx, cy, g.player.X, g.player.Y)
	}
}

func TestWalkMovesAlongFacing(t *testing.T) {
	g := newTestGame(t)
	start := g.player

	// Facing north: forward is +Y, with at most sub-unit X drift from the
	// half-step offset of the sine table.
	g.handleAction(ActionForward)
	if d := g.player.X - start.X; d < -256 || d > 256 {
		t.Errorf("northward walk changed X by %d", d)
	}
	if g.player.Y-start.Y < moveStep*9/10 {
		t.Errorf("northward walk moved Y from %d to %d", start.Y, g.player.Y)
	}
}

func TestTurnUpdatesViewAngle(t *testing.T) {
	g := newTestGame(t)
	if g.view.Angle() != 0 {
		t.Fatalf("initial view angle %#x, want 0 while facing north", uint32(g.view.Angle()))
	}

	g.handleAction(ActionTurnLeft)
	if g.view.Angle() != turnStep {
		t.Errorf("view angle %#x after one left turn, want %#x", uint32(g.view.Angle()), uint32(turnStep))
	}

	g.handleAction(ActionTurnRight)
	if g.view.Angle() != 0 {
		t.Errorf("view angle %#x after turning back, want 0", uint32(g.view.Angle()))
	}
}

func TestOverlayToggleSavesAndRestores(t *testing.T) {
	g := newTestGame(t)
	_, _, w0, h0 := g.view.GetRect()

	g.handleAction(ActionToggleOverlay) // close, saving the window
	if g.overlay {
		t.Fatal("overlay still open")
	}

	// While closed the player wanders off.
	for i := 0; i < 10; i++ {
		g.handleAction(ActionForward)
	}

	g.handleAction(ActionToggleOverlay) // reopen
	x, y, w, h := g.view.GetRect()
	if w != w0 || h != h0 {
		t.Errorf("restored extent %dx%d, want %dx%d", w, h, w0, h0)
	}
	if cx, cy := x+w/2, y+h/2; cx != g.player.X || cy != g.player.Y {
		t.Errorf("reopened map not re-synced to player: center (%d,%d), player (%d,%d)",
			cx, cy, g.player.X, g.player.Y)
	}
}

func TestRotateToggle(t *testing.T) {
	g := newTestGame(t)
	if g.view.Rotate() {
		t.Fatal("rotate must start off")
	}
	g.handleAction(ActionToggleRotate)
	if !g.view.Rotate() {
		t.Error("rotate not enabled")
	}
	g.handleAction(ActionToggleRotate)
	if g.view.Rotate() {
		t.Error("rotate not disabled")
	}
}

func TestMarks(t *testing.T) {
	g := newTestGame(t)

	g.handleAction(ActionAddMark)
	if len(g.marks) != 1 || g.marks[0] != g.view.Center() {
		t.Fatalf("marks = %+v, want the view center", g.marks)
	}

	for i := 0; i < maxMarks+5; i++ {
		g.handleAction(ActionAddMark)
	}
	if len(g.marks) != maxMarks {
		t.Errorf("marks grew to %d, cap is %d", len(g.marks), maxMarks)
	}

	g.handleAction(ActionClearMarks)
	if len(g.marks) != 0 {
		t.Error("marks not cleared")
	}
}

func TestPrintRectSurfacesDump(t *testing.T) {
	g := newTestGame(t)
	g.handleAction(ActionPrintRect)
	if g.message != g.view.String() {
		t.Errorf("message = %q, want the viewport dump", g.message)
	}
}

func TestMouseDragPans(t *testing.T) {
	g := newTestGame(t)
	before := g.view.Rect()

	press := tcell.NewEventMouse(40, 10, tcell.Button1, tcell.ModNone)
	drag := tcell.NewEventMouse(38, 11, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(38, 11, tcell.ButtonNone, tcell.ModNone)
	g.handleMouse(press)
	g.handleMouse(drag)
	g.handleMouse(release)

	scale := int64(g.view.ScaleFrameToMap())
	got := g.view.Rect()
	// Pointer moved 2 cells left and 1 down: the window pulls east and up.
	if got.MinX != before.MinX+2*scale {
		t.Errorf("MinX moved by %d, want %d", got.MinX-before.MinX, 2*scale)
	}
	if got.MinY != before.MinY+scale {
		t.Errorf("MinY moved by %d, want %d", got.MinY-before.MinY, scale)
	}
	if g.follow {
		t.Error("mouse panning must leave follow mode")
	}
	if g.dragging {
		t.Error("release did not end the drag")
	}
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"up arrow pans north", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionPanN},
		{"tab toggles overlay", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionToggleOverlay},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"plus zooms in", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), ActionZoomIn},
		{"equals zooms in", tcell.NewEventKey(tcell.KeyRune, '=', tcell.ModNone), ActionZoomIn},
		{"minus zooms out", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), ActionZoomOut},
		{"zero fits level", tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone), ActionZoomFit},
		{"f toggles follow", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), ActionToggleFollow},
		{"m adds mark", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), ActionAddMark},
		{"unknown rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyToAction(tc.ev); got != tc.want {
				t.Errorf("keyToAction = %v, want %v", got, tc.want)
			}
		})
	}
}
