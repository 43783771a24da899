package render

// Cohen-Sutherland outcodes.
const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

func outcode(x, y, w, h int) int {
	code := 0
	switch {
	case x < 0:
		code |= outLeft
	case x >= w:
		code |= outRight
	}
	switch {
	case y < 0:
		code |= outTop
	case y >= h:
		code |= outBottom
	}
	return code
}

// clipLine clips the segment (x0,y0)-(x1,y1) to the w×h frame rect.
// ok is false when the segment lies fully outside.
func clipLine(x0, y0, x1, y1, w, h int) (cx0, cy0, cx1, cy1 int, ok bool) {
	c0 := outcode(x0, y0, w, h)
	c1 := outcode(x1, y1, w, h)

	for {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		c := c0
		if c == 0 {
			c = c1
		}

		var x, y int
		switch {
		case c&outTop != 0:
			x = x0 + int(int64(x1-x0)*int64(0-y0)/int64(y1-y0))
			y = 0
		case c&outBottom != 0:
			x = x0 + int(int64(x1-x0)*int64(h-1-y0)/int64(y1-y0))
			y = h - 1
		case c&outRight != 0:
			y = y0 + int(int64(y1-y0)*int64(w-1-x0)/int64(x1-x0))
			x = w - 1
		case c&outLeft != 0:
			y = y0 + int(int64(y1-y0)*int64(0-x0)/int64(x1-x0))
			x = 0
		}

		if c == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, w, h)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, w, h)
		}
	}
}

// plotLine walks the Bresenham line from (x0,y0) to (x1,y1), calling plot
// for every cell. Coordinates must already be clipped.
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
