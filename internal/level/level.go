// Package level holds the line-segment geometry the automap draws: wall
// segments in fixed-point map space plus the player start. The engine only
// reads it; nothing here mutates after construction.
package level

import (
	"fmt"

	"automap/internal/fixed"
	"automap/internal/viewport"
)

// CellSize is the map-space edge length of one grid cell, in 16.16 units.
const CellSize = int64(64) << fixed.FracBits

// LineKind classifies a wall segment for coloring.
type LineKind uint8

const (
	KindWall   LineKind = iota // solid one-sided wall
	KindDoor                   // passable boundary
	KindSecret                 // drawn as a regular wall
	KindHidden                 // never drawn
)

// Vertex is a map-space endpoint.
type Vertex struct {
	X, Y int64
}

// Line is one wall segment.
type Line struct {
	A, B Vertex
	Kind LineKind
}

// Level is a named set of wall segments plus the player start position.
type Level struct {
	Name        string
	Lines       []Line
	PlayerStart Vertex
}

// Bounds returns the smallest map rect enclosing every vertex, padded by
// one cell so geometry on the hull is not flush with the window edge.
func (l *Level) Bounds() viewport.MapRect {
	if len(l.Lines) == 0 {
		return viewport.MapRect{MinX: -CellSize, MinY: -CellSize, MaxX: CellSize, MaxY: CellSize}
	}
	r := viewport.MapRect{
		MinX: l.Lines[0].A.X, MinY: l.Lines[0].A.Y,
		MaxX: l.Lines[0].A.X, MaxY: l.Lines[0].A.Y,
	}
	for _, ln := range l.Lines {
		for _, v := range [2]Vertex{ln.A, ln.B} {
			if v.X < r.MinX {
				r.MinX = v.X
			}
			if v.X > r.MaxX {
				r.MaxX = v.X
			}
			if v.Y < r.MinY {
				r.MinY = v.Y
			}
			if v.Y > r.MaxY {
				r.MaxY = v.Y
			}
		}
	}
	r.MinX -= CellSize
	r.MinY -= CellSize
	r.MaxX += CellSize
	r.MaxY += CellSize
	return r
}

// Parse builds a Level from an ASCII grid. Recognized cells:
//
//	#  wall
//	+  door
//	s  secret wall
//	h  hidden wall (kept in the data, never drawn)
//	@  player start (at the cell center)
//
// Each occupied cell contributes its outline edges, with edges shared by
// two occupied cells dropped and collinear runs merged, so a row of '#'
// becomes two long horizontal segments plus two short caps. Grid row 0 is
// the top of the map, which is the highest map-space Y.
func Parse(name string, rows []string) (*Level, error) {
	height := len(rows)
	if height == 0 {
		return nil, fmt.Errorf("level %q: empty grid", name)
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	kinds := make([][]LineKind, height)
	occupied := make([][]bool, height)
	lvl := &Level{Name: name}
	foundStart := false
	for gy, row := range rows {
		kinds[gy] = make([]LineKind, width)
		occupied[gy] = make([]bool, width)
		for gx, c := range row {
			switch c {
			case '#':
				occupied[gy][gx], kinds[gy][gx] = true, KindWall
			case '+':
				occupied[gy][gx], kinds[gy][gx] = true, KindDoor
			case 's':
				occupied[gy][gx], kinds[gy][gx] = true, KindSecret
			case 'h':
				occupied[gy][gx], kinds[gy][gx] = true, KindHidden
			case '@':
				cx, cy := cellOrigin(gx, gy, height)
				lvl.PlayerStart = Vertex{X: cx + CellSize/2, Y: cy + CellSize/2}
				foundStart = true
			case ' ', '.':
			default:
				return nil, fmt.Errorf("level %q: unknown cell %q at %d,%d", name, c, gx, gy)
			}
		}
	}
	if !foundStart {
		return nil, fmt.Errorf("level %q: no player start (@)", name)
	}

	lvl.Lines = extractEdges(kinds, occupied, width, height)
	return lvl, nil
}

// cellOrigin returns the map-space lower-left corner of grid cell (gx, gy).
func cellOrigin(gx, gy, gridHeight int) (int64, int64) {
	return int64(gx) * CellSize, int64(gridHeight-1-gy) * CellSize
}

// extractEdges walks the grid and emits merged outline segments. An edge is
// exposed when exactly one of the two cells it separates is occupied; runs
// of exposed edges with the same kind merge into one line.
func extractEdges(kinds [][]LineKind, occupied [][]bool, width, height int) []Line {
	occ := func(gx, gy int) bool {
		if gx < 0 || gy < 0 || gx >= width || gy >= height {
			return false
		}
		return occupied[gy][gx]
	}

	var lines []Line

	// Horizontal edges: for each boundary between row gy-1 and row gy.
	for gy := 0; gy <= height; gy++ {
		run := -1
		var runKind LineKind
		flush := func(end int) {
			if run < 0 {
				return
			}
			x0, y := cellOrigin(run, gy, height)
			x1 := x0 + int64(end-run)*CellSize
			lines = append(lines, Line{
				A:    Vertex{X: x0, Y: y + CellSize},
				B:    Vertex{X: x1, Y: y + CellSize},
				Kind: runKind,
			})
			run = -1
		}
		for gx := 0; gx < width; gx++ {
			above, below := occ(gx, gy-1), occ(gx, gy)
			if above != below {
				kind := edgeKind(kinds, gx, gy-1, gx, gy, above)
				if run >= 0 && kind != runKind {
					flush(gx)
				}
				if run < 0 {
					run, runKind = gx, kind
				}
			} else {
				flush(gx)
			}
		}
		flush(width)
	}

	// Vertical edges: for each boundary between column gx-1 and column gx.
	for gx := 0; gx <= width; gx++ {
		run := -1
		var runKind LineKind
		flush := func(end int) {
			if run < 0 {
				return
			}
			x, yTop := cellOrigin(gx, run, height)
			y1 := yTop + CellSize
			y0 := y1 - int64(end-run)*CellSize
			lines = append(lines, Line{
				A:    Vertex{X: x, Y: y0},
				B:    Vertex{X: x, Y: y1},
				Kind: runKind,
			})
			run = -1
		}
		for gy := 0; gy < height; gy++ {
			left, right := occ(gx-1, gy), occ(gx, gy)
			if left != right {
				kind := edgeKind(kinds, gx-1, gy, gx, gy, left)
				if run >= 0 && kind != runKind {
					flush(gy)
				}
				if run < 0 {
					run, runKind = gy, kind
				}
			} else {
				flush(gy)
			}
		}
		flush(height)
	}

	return lines
}

// edgeKind picks the kind of the occupied side of an exposed edge.
func edgeKind(kinds [][]LineKind, ax, ay, bx, by int, firstOccupied bool) LineKind {
	if firstOccupied {
		return kinds[ay][ax]
	}
	return kinds[by][bx]
}
