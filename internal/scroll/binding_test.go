package scroll

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func known(d float32) DurationFunc {
	return func() (float32, bool) { return d, true }
}

func newBinding(t *testing.T, scrub float32, d DurationFunc, onChange func(float32)) *Binding {
	t.Helper()
	b, err := Bind(Config{Trigger: "body", Start: "top top", End: "bottom bottom", Scrub: scrub}, d, onChange, nil)
	require.NoError(t, err)
	return b
}

func TestPositionIsProgressTimesDuration(t *testing.T) {
	var got []float32
	b := newBinding(t, 0, known(6), func(p float32) { got = append(got, p) })

	b.Report(0.5)
	b.Tick(1.0 / 60)
	require.Len(t, got, 1)
	assert.Equal(t, float32(3), got[0])
}

func TestProgressIsClamped(t *testing.T) {
	tests := []struct {
		progress float32
		want     float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 1.5},
		{1, 6},
		{3, 6},
	}
	for _, tt := range tests {
		b := newBinding(t, 0, known(6), nil)
		b.Report(0.1)
		b.Tick(0.016)
		b.Report(tt.progress)
		b.Tick(0.016)

		assert.InDelta(t, tt.want, b.Position(), 1e-6, "progress %v", tt.progress)
		assert.GreaterOrEqual(t, b.Position(), float32(0))
		assert.LessOrEqual(t, b.Position(), float32(6))
	}
}

func TestSmoothingIsMonotoneWithoutOvershoot(t *testing.T) {
	var positions []float32
	b := newBinding(t, 1, known(6), func(p float32) { positions = append(positions, p) })

	var maxTarget float32
	progress := float32(0)
	for frame := 0; frame < 600; frame++ {
		if frame < 120 {
			progress += 1.0 / 150
		}
		b.Report(progress)
		target, _ := b.Target()
		if target > maxTarget {
			maxTarget = target
		}
		b.Tick(1.0 / 60)
		assert.LessOrEqual(t, b.Position(), maxTarget, "frame %d", frame)
	}

	for i := 1; i < len(positions); i++ {
		assert.GreaterOrEqual(t, positions[i], positions[i-1])
	}
	target, _ := b.Target()
	assert.Equal(t, target, b.Position(), "settles on the target")
}

func TestSmoothingLags(t *testing.T) {
	b := newBinding(t, 1, known(6), nil)
	b.Report(1)
	b.Tick(1.0 / 60)

	assert.Greater(t, b.Position(), float32(0))
	assert.Less(t, b.Position(), float32(6))
}

func TestReportsHeldUntilDurationKnown(t *testing.T) {
	var (
		duration float32
		got      []float32
	)
	durationFn := func() (float32, bool) { return duration, duration > 0 }
	b := newBinding(t, 0, durationFn, func(p float32) { got = append(got, p) })

	b.Report(0.2)
	b.Report(0.5)
	assert.NotPanics(t, func() { b.Tick(0.016) })
	assert.Empty(t, got)

	duration = 6
	b.Tick(0.016)
	assert.Equal(t, []float32{3}, got)
}

func TestNoReportNeverFires(t *testing.T) {
	fired := false
	b := newBinding(t, 0, known(6), func(float32) { fired = true })
	for i := 0; i < 10; i++ {
		b.Tick(0.016)
	}
	assert.False(t, fired)
}

func TestUnbindIsIdempotent(t *testing.T) {
	w := NewWheelSource(WheelConfig{PageHeight: 2000, ViewportHeight: 1000, PixelsPerNotch: 100}, Marker{}, Marker{Trigger: Edge{Fraction: 1}, Viewport: Edge{Fraction: 1}})
	fired := 0
	b := newBinding(t, 0, known(6), func(float32) { fired++ })
	b.Listen(w)

	w.Wheel(-5)
	b.Tick(0.016)
	assert.Equal(t, 1, fired)

	b.Unbind()
	b.Unbind()
	w.Wheel(-3)
	b.Tick(0.016)
	assert.Equal(t, 1, fired)
	assert.Empty(t, w.subs)
}

func TestConcurrentReports(t *testing.T) {
	b := newBinding(t, 0, known(6), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Report(float32(i) / 8)
			}
		}(i)
	}
	wg.Wait()
	b.Tick(0.016)

	assert.GreaterOrEqual(t, b.Position(), float32(0))
	assert.LessOrEqual(t, b.Position(), float32(6))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Start: "top top", End: "bottom bottom"}.Validate())
	assert.Error(t, Config{Start: "top top", End: "bottom bottom", Scrub: -1}.Validate())
	assert.ErrorIs(t, Config{Start: "sideways", End: "bottom bottom"}.Validate(), ErrInvalidMarker)

	_, err := Bind(Config{Start: "top", End: "nowhere"}, known(1), nil, nil)
	assert.Error(t, err)
}
