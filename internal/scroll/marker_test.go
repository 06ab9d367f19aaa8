package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		in   string
		want Marker
	}{
		{"top top", Marker{Edge{0, 0}, Edge{0, 0}}},
		{"bottom bottom", Marker{Edge{1, 0}, Edge{1, 0}}},
		{"top center", Marker{Edge{0, 0}, Edge{0.5, 0}}},
		{"bottom 80%", Marker{Edge{1, 0}, Edge{0.8, 0}}},
		{"top+=100 top", Marker{Edge{0, 100}, Edge{0, 0}}},
		{"center-=50px 200px", Marker{Edge{0.5, -50}, Edge{0, 200}}},
		{"center", Marker{Edge{0.5, 0}, Edge{0.5, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMarker(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Trigger.Fraction, got.Trigger.Fraction, 1e-6)
			assert.InDelta(t, tt.want.Trigger.Pixels, got.Trigger.Pixels, 1e-6)
			assert.InDelta(t, tt.want.Viewport.Fraction, got.Viewport.Fraction, 1e-6)
			assert.InDelta(t, tt.want.Viewport.Pixels, got.Viewport.Pixels, 1e-6)
		})
	}
}

func TestParseMarkerInvalid(t *testing.T) {
	for _, in := range []string{"", "top top top", "middle top", "top x%", "top*=5 top", "top+=abc top"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseMarker(in)
			assert.ErrorIs(t, err, ErrInvalidMarker)
		})
	}
}

func TestTriggerRange(t *testing.T) {
	start, _ := ParseMarker("top top")
	end, _ := ParseMarker("bottom bottom")
	trig := Trigger{Top: 0, Height: 6000, Viewport: 1000}

	r := trig.Range(start, end)
	assert.Equal(t, Range{Start: 0, End: 5000}, r)

	assert.Equal(t, float32(0), r.Progress(-100))
	assert.Equal(t, float32(0.5), r.Progress(2500))
	assert.Equal(t, float32(1), r.Progress(9000))
}

func TestTriggerRangeCenter(t *testing.T) {
	start, _ := ParseMarker("top center")
	end, _ := ParseMarker("bottom center")
	trig := Trigger{Top: 1000, Height: 2000, Viewport: 800}

	r := trig.Range(start, end)
	assert.Equal(t, float32(600), r.Start)
	assert.Equal(t, float32(2600), r.End)
}

func TestDegenerateRange(t *testing.T) {
	r := Range{Start: 100, End: 100}
	assert.Equal(t, float32(0), r.Progress(99))
	assert.Equal(t, float32(1), r.Progress(100))
}
