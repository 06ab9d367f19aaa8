package scroll

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMarker is returned for marker strings that cannot be parsed.
var ErrInvalidMarker = errors.New("scroll: invalid marker")

// Edge is a point along a box of some height: Fraction*height + Pixels.
type Edge struct {
	Fraction float32
	Pixels   float32
}

// Resolve returns the edge offset within a box of the given height.
func (e Edge) Resolve(height float32) float32 {
	return e.Fraction*height + e.Pixels
}

// Marker pairs an edge of the trigger region with an edge of the viewport.
// The marker is reached when the two meet.
type Marker struct {
	Trigger  Edge
	Viewport Edge
}

// ParseMarker parses "<trigger edge> <viewport edge>". Each edge is top,
// center, bottom, N% or Npx and may carry a +=N or -=N pixel offset, e.g.
// "top center", "bottom 80%", "top+=100 top". A single edge applies to both.
func ParseMarker(s string) (Marker, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		fields = append(fields, fields[0])
	case 2:
	default:
		return Marker{}, fmt.Errorf("%w %q: want \"<trigger> <viewport>\"", ErrInvalidMarker, s)
	}

	trig, err := parseEdge(fields[0])
	if err != nil {
		return Marker{}, fmt.Errorf("%w %q: %v", ErrInvalidMarker, s, err)
	}
	view, err := parseEdge(fields[1])
	if err != nil {
		return Marker{}, fmt.Errorf("%w %q: %v", ErrInvalidMarker, s, err)
	}
	return Marker{Trigger: trig, Viewport: view}, nil
}

func parseEdge(s string) (Edge, error) {
	var offset float32
	if i := strings.Index(s, "="); i > 0 {
		sign := s[i-1]
		if sign != '+' && sign != '-' {
			return Edge{}, fmt.Errorf("bad offset in %q", s)
		}
		n, err := parsePixels(s[i+1:])
		if err != nil {
			return Edge{}, err
		}
		if sign == '-' {
			n = -n
		}
		offset = n
		s = s[:i-1]
	}

	var e Edge
	switch {
	case s == "top":
	case s == "center":
		e.Fraction = 0.5
	case s == "bottom":
		e.Fraction = 1
	case strings.HasSuffix(s, "%"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return Edge{}, fmt.Errorf("bad percentage %q", s)
		}
		e.Fraction = float32(n) / 100
	default:
		n, err := parsePixels(s)
		if err != nil {
			return Edge{}, err
		}
		e.Pixels = n
	}
	e.Pixels += offset
	return e, nil
}

func parsePixels(s string) (float32, error) {
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 32)
	if err != nil {
		return 0, fmt.Errorf("bad pixel value %q", s)
	}
	return float32(n), nil
}
