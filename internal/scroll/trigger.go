package scroll

// Trigger is the scrolled region, in page pixels, together with the height
// of the viewport that scrolls over it.
type Trigger struct {
	Top      float32
	Height   float32
	Viewport float32
}

// Offset returns the scroll offset at which m is reached.
func (t Trigger) Offset(m Marker) float32 {
	return t.Top + m.Trigger.Resolve(t.Height) - m.Viewport.Resolve(t.Viewport)
}

// Range returns the scroll offsets of the start and end markers.
func (t Trigger) Range(start, end Marker) Range {
	return Range{Start: t.Offset(start), End: t.Offset(end)}
}

// Range is a span of scroll offsets mapped onto progress 0..1.
type Range struct {
	Start float32
	End   float32
}

// Progress returns the normalized position of scrollY within the range,
// clamped to [0, 1].
func (r Range) Progress(scrollY float32) float32 {
	if r.End <= r.Start {
		if scrollY >= r.End {
			return 1
		}
		return 0
	}
	return clamp01((scrollY - r.Start) / (r.End - r.Start))
}

func clamp01(v float32) float32 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
