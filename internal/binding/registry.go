// Package binding connects timeline tracks to live objects.
//
// A binding pairs an object name from the animation sequence with a target,
// a set of initial channel values, a unit converter and an apply function.
// The registry re-applies every binding whose name was evaluated.
package binding

import (
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
	"github.com/Faultbox/divescroll/internal/timeline"
)

// Channels maps channel names such as "position.x" to values.
type Channels map[string]float32

// Clone returns a copy of c.
func (c Channels) Clone() Channels {
	out := make(Channels, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ConvertFunc translates authored values into the units the target uses.
// It must not modify its argument.
type ConvertFunc func(Channels) Channels

// Handle identifies a registered binding. The zero Handle is never valid.
type Handle struct {
	id uint64
}

type key struct {
	target any
	name   string
}

type entry struct {
	id      uint64
	key     key
	initial Channels
	convert ConvertFunc
	apply   func(Channels)
}

// Registry holds bindings in registration order. It is used from the frame
// goroutine only.
type Registry struct {
	entries []*entry
	byKey   map[key]*entry
	nextID  uint64
	log     *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		byKey: make(map[key]*entry),
		log:   logger.OrNop(log),
	}
}

// Register binds target to the sequence object called name. target must be
// comparable; Bind enforces that at compile time. The initial values are
// applied once immediately. Registering the same (target, name) again
// replaces the earlier binding and invalidates its handle.
func (r *Registry) Register(target any, name string, initial Channels, convert ConvertFunc, apply func(Channels)) Handle {
	if convert == nil {
		convert = Identity
	}
	r.nextID++
	e := &entry{
		id:      r.nextID,
		key:     key{target: target, name: name},
		initial: initial.Clone(),
		convert: convert,
		apply:   apply,
	}

	if prev, ok := r.byKey[e.key]; ok {
		for i, other := range r.entries {
			if other == prev {
				r.entries[i] = e
				break
			}
		}
		r.log.Debug("binding replaced", zap.String("name", name))
	} else {
		r.entries = append(r.entries, e)
		r.log.Debug("binding registered", zap.String("name", name))
	}
	r.byKey[e.key] = e

	e.apply(e.convert(e.initial.Clone()))
	return Handle{id: e.id}
}

// Unregister removes the binding behind h. Unknown and stale handles are
// ignored.
func (r *Registry) Unregister(h Handle) {
	for i, e := range r.entries {
		if e.id != h.id {
			continue
		}
		r.entries = append(r.entries[:i], r.entries[i+1:]...)
		delete(r.byKey, e.key)
		r.log.Debug("binding removed", zap.String("name", e.key.name))
		return
	}
}

// ApplyAll applies evaluated values to every binding whose name is present.
// Evaluated channels are merged over the binding's initial values, so a
// track that animates only some channels leaves the rest at rest pose.
// Bindings with no matching track are skipped.
func (r *Registry) ApplyAll(values timeline.Values) {
	for _, e := range r.entries {
		evaluated, ok := values[e.key.name]
		if !ok {
			continue
		}
		merged := e.initial.Clone()
		for ch, v := range evaluated {
			merged[ch] = v
		}
		e.apply(e.convert(merged))
	}
}

// Len returns the number of live bindings.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the bound object names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.key.name
	}
	return names
}

// Bind is the typed form of Registry.Register.
func Bind[T comparable](r *Registry, target T, name string, initial Channels, convert ConvertFunc, apply func(T, Channels)) Handle {
	return r.Register(target, name, initial, convert, func(c Channels) {
		apply(target, c)
	})
}
