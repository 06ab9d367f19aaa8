package scroll

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyMarkers() (Marker, Marker) {
	start, _ := ParseMarker("top top")
	end, _ := ParseMarker("bottom bottom")
	return start, end
}

func TestWheelSource(t *testing.T) {
	start, end := bodyMarkers()
	w := NewWheelSource(WheelConfig{PageHeight: 6000, ViewportHeight: 1000, PixelsPerNotch: 100}, start, end)

	var got []float32
	cancel := w.Subscribe(func(p float32) { got = append(got, p) })

	w.Wheel(-25)
	assert.Equal(t, float32(2500), w.ScrollY())
	assert.Equal(t, float32(0.5), w.Progress())

	w.Wheel(-1000)
	assert.Equal(t, float32(5000), w.ScrollY())
	w.Wheel(1000)
	assert.Equal(t, float32(0), w.ScrollY())

	assert.Equal(t, []float32{0.5, 1, 0}, got)

	cancel()
	w.Wheel(-1)
	assert.Len(t, got, 3)
}

func TestWheelSourceResize(t *testing.T) {
	start, end := bodyMarkers()
	w := NewWheelSource(WheelConfig{PageHeight: 6000, ViewportHeight: 1000}, start, end)
	w.ScrollTo(5000)

	w.Resize(2000)
	assert.Equal(t, float32(4000), w.ScrollY())
	assert.Equal(t, float32(1), w.Progress())
}

func TestWheelSourcePaging(t *testing.T) {
	start, end := bodyMarkers()
	w := NewWheelSource(WheelConfig{PageHeight: 6000, ViewportHeight: 1000}, start, end)

	w.PageBy(2)
	assert.Equal(t, float32(2000), w.ScrollY())
	w.PageBy(-0.5)
	assert.Equal(t, float32(1500), w.ScrollY())
	w.ScrollToEnd()
	assert.Equal(t, float32(5000), w.ScrollY())
	assert.Equal(t, float32(1), w.Progress())
}

func TestWheelSourceMarkers(t *testing.T) {
	start, err := ParseMarker("top center")
	require.NoError(t, err)
	end, err := ParseMarker("bottom bottom")
	require.NoError(t, err)
	w := NewWheelSource(WheelConfig{PageHeight: 6000, ViewportHeight: 1000}, start, end)

	m := w.Markers()
	assert.Equal(t, float32(500), m.ScrollerStart)
	assert.Equal(t, float32(1000), m.ScrollerEnd)
	assert.Equal(t, float32(0), m.Start)
	assert.Equal(t, float32(6000), m.End)

	// the trigger markers meet the scroller markers at the range bounds
	w.ScrollTo(w.Range().End)
	m = w.Markers()
	assert.Equal(t, m.ScrollerEnd, m.End)
	assert.Equal(t, float32(-5000), m.Start)
}

func TestServerPublishesProgress(t *testing.T) {
	s := NewServer(nil)
	got := make(chan float32, 4)
	s.Subscribe(func(p float32) { got <- p })

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ProgressPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Message{Progress: 0.42}))

	select {
	case p := <-got:
		assert.InDelta(t, 0.42, p, 1e-6)
	case <-time.After(5 * time.Second):
		t.Fatal("no progress received")
	}
}

func TestServerStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(nil).Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
