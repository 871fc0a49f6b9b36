package draw

import "math"

// DrawLine draws a line between two logical points using Bresenham's
// algorithm in pixel space.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills every pixel whose centre lies within radius r (logical
// units) of (cx,cy). At least the centre pixel is always set.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	c.Set(cx, cy, col)

	minX, minY := c.toPixel(cx-r, cy-r)
	maxX, maxY := c.toPixel(cx+r, cy+r)
	r2 := r * r

	for py := minY; py <= maxY; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := minX; px <= maxX; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			dx, dy := lx-cx, ly-cy
			if dx*dx+dy*dy <= r2 {
				c.setPixel(px, py, col)
			}
		}
	}
}

// DrawRect outlines the rectangle spanning two logical corners.
func (c *Canvas) DrawRect(x1, y1, x2, y2 float64, col Color) {
	c.DrawLine(Point{x1, y1}, Point{x2, y1}, col)
	c.DrawLine(Point{x2, y1}, Point{x2, y2}, col)
	c.DrawLine(Point{x2, y2}, Point{x1, y2}, col)
	c.DrawLine(Point{x1, y2}, Point{x1, y1}, col)
}

// DrawRay draws a line of length l from (x,y) along angle.
func (c *Canvas) DrawRay(x, y, angle, l float64, col Color) {
	c.DrawLine(Point{x, y}, Point{x + math.Cos(angle)*l, y + math.Sin(angle)*l}, col)
}
