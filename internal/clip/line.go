package clip

// Line clips the segment p0-p1 to the window using the Liang-Barsky
// parameterization. It returns the clipped endpoints and false when the
// segment misses the window entirely.
func Line(p0, p1 Point, window Box) (Point, Point, bool) {
	if window.IsEmpty() {
		return p0, p1, false
	}
	t0, t1 := float32(0), float32(1)
	d := p1.Sub(p0)
	dx, dy := d.X, d.Y

	p := [4]float32{-dx, dx, -dy, dy}
	q := [4]float32{
		p0.X - window.Min.X,
		window.Max.X - p0.X,
		p0.Y - window.Min.Y,
		window.Max.Y - p0.Y,
	}
	for i := range p {
		switch {
		case p[i] == 0:
			// Parallel to this edge: reject if outside it.
			if q[i] < 0 {
				return p0, p1, false
			}
		case p[i] < 0:
			t0 = max(t0, q[i]/p[i])
		default:
			t1 = min(t1, q[i]/p[i])
		}
	}
	if t0 > t1 {
		return p0, p1, false
	}

	a, b := p0, p1
	if t0 > 0 {
		a = p0.Lerp(p1, t0)
	}
	if t1 < 1 {
		b = p0.Lerp(p1, t1)
	}
	return a, b, true
}
