package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/divescroll/internal/logger"
)

// Snapshot is the persisted form of a sequence. JSON documents decode too,
// since JSON is a subset of YAML.
type Snapshot struct {
	Project  string                            `yaml:"project,omitempty" json:"project,omitempty"`
	Sheet    string                            `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	Duration float32                           `yaml:"duration" json:"duration"`
	Objects  map[string]map[string][]keyRecord `yaml:"objects" json:"objects"`
}

type keyRecord struct {
	Time  float32 `yaml:"time" json:"time"`
	Value float32 `yaml:"value" json:"value"`
	Ease  Ease    `yaml:"ease,omitempty" json:"ease,omitempty"`
}

// Decode parses a snapshot document and validates the resulting sequence.
func Decode(data []byte) (*Snapshot, *Sequence, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil, errors.New("snapshot is empty")
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("parse snapshot: %w", err)
	}

	seq := Empty(snap.Duration)
	for object, channels := range snap.Objects {
		track := make(Track, len(channels))
		for name, records := range channels {
			keys := make([]Keyframe, len(records))
			for i, r := range records {
				keys[i] = Keyframe{Time: r.Time, Value: r.Value, Ease: r.Ease}
			}
			track[name] = Channel{Keys: keys}
		}
		seq.Tracks[object] = track
	}
	if err := seq.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snap, seq, nil
}

// Load decodes data into a sequence. Absent or malformed input yields an
// empty sequence of defaultDuration together with the error that caused the
// fallback; the returned sequence is never nil.
func Load(data []byte, defaultDuration float32) (*Sequence, error) {
	_, seq, err := Decode(data)
	if err != nil {
		return Empty(defaultDuration), err
	}
	return seq, nil
}

// Encode writes seq as a YAML snapshot document.
func Encode(seq *Sequence, project, sheet string) ([]byte, error) {
	data, err := yaml.Marshal(snapshotOf(seq, project, sheet))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// EncodeJSON writes seq as an indented JSON snapshot document.
func EncodeJSON(seq *Sequence, project, sheet string) ([]byte, error) {
	data, err := json.MarshalIndent(snapshotOf(seq, project, sheet), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

func snapshotOf(seq *Sequence, project, sheet string) *Snapshot {
	snap := Snapshot{
		Project:  project,
		Sheet:    sheet,
		Duration: seq.Duration,
		Objects:  make(map[string]map[string][]keyRecord, len(seq.Tracks)),
	}
	for object, track := range seq.Tracks {
		channels := make(map[string][]keyRecord, len(track))
		for name, ch := range track {
			records := make([]keyRecord, len(ch.Keys))
			for i, k := range ch.Keys {
				records[i] = keyRecord{Time: k.Time, Value: k.Value, Ease: k.Ease}
			}
			channels[name] = records
		}
		snap.Objects[object] = channels
	}
	return &snap
}

// Loader reads snapshots from a file path or an http(s) URL and falls back
// to an empty sequence on any failure.
type Loader struct {
	Project         string
	Sheet           string
	DefaultDuration float32
	Client          *http.Client
	Log             *zap.Logger
}

// Open loads the snapshot at location. Errors are logged as warnings and the
// empty default sequence is returned instead.
func (l *Loader) Open(ctx context.Context, location string) *Sequence {
	log := logger.OrNop(l.Log)

	var (
		data []byte
		err  error
	)
	switch {
	case location == "":
		err = errors.New("no snapshot location configured")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = l.fetch(ctx, location)
	default:
		data, err = os.ReadFile(location)
	}
	if err != nil {
		log.Warn("animation snapshot unavailable, using empty sequence",
			zap.String("location", location),
			zap.Float32("duration", l.DefaultDuration),
			zap.Error(err))
		return Empty(l.DefaultDuration)
	}

	snap, seq, err := Decode(data)
	if err != nil {
		log.Warn("animation snapshot malformed, using empty sequence",
			zap.String("location", location),
			zap.Error(err))
		return Empty(l.DefaultDuration)
	}
	if l.Sheet != "" && snap.Sheet != "" && snap.Sheet != l.Sheet {
		log.Warn("snapshot sheet does not match",
			zap.String("want", l.Sheet),
			zap.String("got", snap.Sheet))
	}
	log.Info("animation snapshot loaded",
		zap.String("location", location),
		zap.Float32("duration", seq.Duration),
		zap.Strings("objects", sortedKeys(seq.Tracks)))
	return seq
}

// LoadFile reads a snapshot file. See Load for the fallback contract.
func LoadFile(path string, defaultDuration float32) (*Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Empty(defaultDuration), fmt.Errorf("read snapshot: %w", err)
	}
	return Load(data, defaultDuration)
}

// Fetch downloads a snapshot over HTTP. See Load for the fallback contract.
func Fetch(ctx context.Context, url string, defaultDuration float32) (*Sequence, error) {
	l := Loader{DefaultDuration: defaultDuration}
	data, err := l.fetch(ctx, url)
	if err != nil {
		return Empty(defaultDuration), err
	}
	return Load(data, defaultDuration)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch snapshot: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	return data, nil
}
