// Package viewport tracks the rectangular window the automap shows of the
// level, and converts between map space and frame-buffer space.
//
// Map space is 16.16 fixed point stored in int64 so a scaled window never
// overflows. Frame-buffer space is plain pixels. The scale factor passed in
// is map units per frame-buffer pixel; its inverse is derived for the
// render path.
package viewport

import (
	"errors"
	"fmt"

	"automap/internal/fixed"
)

// ErrInvalidGeometry reports a non-positive window size or scale.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ErrInvalidRectangle reports a rectangle whose min/max are not ordered.
var ErrInvalidRectangle = errors.New("invalid rectangle")

// MapPoint is a position in fixed-point map space.
type MapPoint struct {
	X, Y int64
}

// MapRect is an axis-aligned map-space rectangle. A valid rect always has
// MaxX > MinX and MaxY > MinY.
type MapRect struct {
	MinX, MinY, MaxX, MaxY int64
}

// Width returns the horizontal extent of r.
func (r MapRect) Width() int64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r MapRect) Height() int64 { return r.MaxY - r.MinY }

// Mid returns the midpoint of r.
func (r MapRect) Mid() MapPoint {
	return MapPoint{X: r.MinX + r.Width()/2, Y: r.MinY + r.Height()/2}
}

// translated returns r shifted by (dx, dy).
func (r MapRect) translated(dx, dy int64) MapRect {
	return MapRect{
		MinX: r.MinX + dx,
		MinY: r.MinY + dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}

// savedView is the one-slot snapshot taken by SaveRect.
type savedView struct {
	rect   MapRect
	center MapPoint
}

// Viewport owns the visible map rectangle and the scale relating it to the
// frame buffer. All mutation goes through its methods; failed validation
// leaves the state untouched. Not safe for concurrent use; the contract is
// one driving goroutine, invoked once per frame.
type Viewport struct {
	center MapPoint
	rect   MapRect

	rotate bool
	angle  fixed.Angle

	winW, winH      int
	scaleFrameToMap fixed.Fixed // map units per frame-buffer pixel
	scaleMapToFrame fixed.Fixed // derived inverse

	panX, panY int64 // pending pan, cleared every UpdatePanning

	saved *savedView
}

// New creates a viewport centered on the player, sized so the window covers
// window*scale map units per axis. Window dimensions and scale must be
// positive.
func New(playerX, playerY int64, winW, winH int, scale fixed.Fixed) (*Viewport, error) {
	v := &Viewport{center: MapPoint{X: playerX, Y: playerY}}
	if err := v.setScale(winW, winH, scale); err != nil {
		return nil, err
	}
	return v, nil
}

// setScale validates and applies a window/scale pair, resizing the rect
// around the current center.
func (v *Viewport) setScale(winW, winH int, scale fixed.Fixed) error {
	if winW <= 0 || winH <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidGeometry, winW, winH)
	}
	if scale <= 0 {
		return fmt.Errorf("%w: scale %d", ErrInvalidGeometry, scale)
	}
	v.winW, v.winH = winW, winH
	v.scaleFrameToMap = scale
	v.scaleMapToFrame = fixed.Div(fixed.One, scale)

	w := frameToMap(winW, scale)
	h := frameToMap(winH, scale)
	v.rect = MapRect{
		MinX: v.center.X - w/2,
		MinY: v.center.Y - h/2,
	}
	v.rect.MaxX = v.rect.MinX + w
	v.rect.MaxY = v.rect.MinY + h
	return nil
}

// frameToMap converts a frame-buffer distance to map units at the given
// scale.
func frameToMap(pixels int, scale fixed.Fixed) int64 {
	return int64(pixels) * int64(scale)
}

// ChangeWindowLocation jumps the view to an explicit map rectangle and
// updates the rotation flag. The rectangle must have positive extent on
// both axes.
func (v *Viewport) ChangeWindowLocation(rotate bool, r MapRect) error {
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrInvalidRectangle, r.MinX, r.MinY, r.MaxX, r.MaxY)
	}
	v.rect = r
	v.center = r.Mid()
	v.rotate = rotate
	return nil
}

// ActivateNewScale applies a new window size and scale, resizing the rect
// around the unchanged center. Calling it twice with the same arguments
// yields the same rect as calling it once.
func (v *Viewport) ActivateNewScale(winW, winH int, scale fixed.Fixed) error {
	return v.setScale(winW, winH, scale)
}

// UpdatePanning folds one frame's keyboard and pointer deltas into the
// view. Both pairs are summed into the accumulator, rotated back into
// world space when the rotate flag is on, applied to rect and center in one
// shift, and the accumulator is cleared. It never fails.
func (v *Viewport) UpdatePanning(kbX, kbY, mouseX, mouseY int64) {
	v.panX += kbX + mouseX
	v.panY += kbY + mouseY

	dx, dy := v.panX, v.panY
	v.panX, v.panY = 0, 0
	if dx == 0 && dy == 0 {
		return
	}
	if v.rotate {
		dx, dy = unrotate(dx, dy, v.angle)
	}

	v.rect = v.rect.translated(dx, dy)
	v.center.X += dx
	v.center.Y += dy
}

// unrotate maps a delta expressed in the player-relative rotated frame back
// into world space by rotating it through angle.
func unrotate(x, y int64, angle fixed.Angle) (int64, int64) {
	sin := int64(fixed.Sin(angle))
	cos := int64(fixed.Cos(angle))
	rx := (x*cos - y*sin) >> fixed.FracBits
	ry := (x*sin + y*cos) >> fixed.FracBits
	return rx, ry
}

// SaveRect snapshots the current rect and center, replacing any previous
// snapshot.
func (v *Viewport) SaveRect() {
	v.saved = &savedView{rect: v.rect, center: v.center}
}

// RestoreRect restores the saved rect if one exists and consumes it, then
// re-centers the view on the player. Without a snapshot only the
// re-centering happens.
func (v *Viewport) RestoreRect(playerX, playerY int64) {
	if v.saved != nil {
		v.rect = v.saved.rect
		v.center = v.saved.center
		v.saved = nil
	}
	v.FollowPlayer(playerX, playerY)
}

// FollowPlayer translates the rect so the view is centered on the player.
// Extent, accumulator, and the saved snapshot are untouched.
func (v *Viewport) FollowPlayer(playerX, playerY int64) {
	dx := playerX - v.center.X
	dy := playerY - v.center.Y
	if dx == 0 && dy == 0 {
		return
	}
	v.rect = v.rect.translated(dx, dy)
	v.center = MapPoint{X: playerX, Y: playerY}
}

// SetAngle sets the view angle used to interpret rotated pan deltas.
func (v *Viewport) SetAngle(a fixed.Angle) { v.angle = a }

// GetRect returns the committed rectangle as origin plus extent.
func (v *Viewport) GetRect() (x, y, w, h int64) {
	return v.rect.MinX, v.rect.MinY, v.rect.Width(), v.rect.Height()
}

// Rect returns the committed rectangle.
func (v *Viewport) Rect() MapRect { return v.rect }

// Center returns the view's focal point.
func (v *Viewport) Center() MapPoint { return v.center }

// Rotate reports whether the view is in the player-relative rotated frame.
func (v *Viewport) Rotate() bool { return v.rotate }

// Angle returns the current view angle.
func (v *Viewport) Angle() fixed.Angle { return v.angle }

// ScaleFrameToMap returns the map-units-per-pixel factor.
func (v *Viewport) ScaleFrameToMap() fixed.Fixed { return v.scaleFrameToMap }

// ScaleMapToFrame returns the pixels-per-map-unit factor.
func (v *Viewport) ScaleMapToFrame() fixed.Fixed { return v.scaleMapToFrame }

// WindowSize returns the frame-buffer extent in pixels.
func (v *Viewport) WindowSize() (w, h int) { return v.winW, v.winH }

// String dumps the rectangle and scale for debugging.
func (v *Viewport) String() string {
	return fmt.Sprintf("rect (%d,%d)-(%d,%d) center (%d,%d) scale %d rotate %v",
		v.rect.MinX, v.rect.MinY, v.rect.MaxX, v.rect.MaxY,
		v.center.X, v.center.Y, v.scaleFrameToMap, v.rotate)
}
