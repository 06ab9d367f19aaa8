package timeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const jsonSnapshot = `{
  "project": "WebGL Project",
  "sheet": "Main Scene",
  "duration": 6,
  "objects": {
    "Camera": {
      "position.x": [{"time": 0, "value": 0}, {"time": 6, "value": 5}],
      "rotation.y": [{"time": 0, "value": 0, "ease": "inOutSine"}, {"time": 3, "value": 90}]
    }
  }
}`

func TestLoadJSON(t *testing.T) {
	seq, err := Load([]byte(jsonSnapshot), 1)
	require.NoError(t, err)
	assert.Equal(t, float32(6), seq.Duration)
	require.Contains(t, seq.Tracks, "Camera")
	assert.Len(t, seq.Tracks["Camera"]["position.x"].Keys, 2)
	assert.Equal(t, EaseInOutSine, seq.Tracks["Camera"]["rotation.y"].Keys[0].Ease)
}

func TestLoadFallsBack(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"absent", ""},
		{"malformed", "{objects: ["},
		{"zero duration", "duration: 0\n"},
		{"out of range key", "duration: 2\nobjects:\n  A:\n    x: [{time: 5, value: 1}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Load([]byte(tt.data), 6)
			assert.Error(t, err)
			require.NotNil(t, seq)
			assert.Equal(t, float32(6), seq.Duration)
			assert.Empty(t, seq.Tracks)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	b := NewBuilder(6)
	b.Set("Camera", "position.z", 0, 5)
	b.SetEased("Camera", "position.z", 3, -2, EaseOutCubic)
	b.Set("Camera", "position.z", 6, -10)

	data, err := Encode(b.Build(), "WebGL Project", "Main Scene")
	require.NoError(t, err)

	snap, seq, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Main Scene", snap.Sheet)
	assert.Equal(t, b.Build(), seq)
}

func TestEncodeJSONDecodes(t *testing.T) {
	b := NewBuilder(6)
	b.Set("Camera", "rotation.y", 0, 0)
	b.SetEased("Camera", "rotation.y", 6, 90, EaseInOutSine)

	data, err := EncodeJSON(b.Build(), "WebGL Project", "Main Scene")
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	_, seq, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, b.Build(), seq)
}

func TestLoaderOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animation.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonSnapshot), 0644))

	core, logs := observer.New(zapcore.WarnLevel)
	l := &Loader{Sheet: "Other Scene", DefaultDuration: 1, Log: zap.New(core)}
	seq := l.Open(context.Background(), path)

	assert.Equal(t, float32(6), seq.Duration)
	assert.Equal(t, 1, logs.FilterMessage("snapshot sheet does not match").Len())
}

func TestLoaderOpenMissingWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := &Loader{DefaultDuration: 6, Log: zap.New(core)}

	seq := l.Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, float32(6), seq.Duration)
	assert.Empty(t, seq.Tracks)
	assert.Equal(t, 1, logs.Len())
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/animation.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(jsonSnapshot))
	}))
	defer srv.Close()

	seq, err := Fetch(context.Background(), srv.URL+"/animation.json", 1)
	require.NoError(t, err)
	assert.Equal(t, float32(6), seq.Duration)

	seq, err = Fetch(context.Background(), srv.URL+"/gone.json", 3)
	assert.Error(t, err)
	assert.Equal(t, float32(3), seq.Duration)
}
