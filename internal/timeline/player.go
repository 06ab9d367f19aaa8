package timeline

import "github.com/chewxy/math32"

// Player advances a position over time, for previewing a sequence while
// authoring. Scroll-driven playback does not use it.
type Player struct {
	duration   func() (float32, bool)
	pos        float32
	rate       float32
	iterations int
	done       int
	playing    bool
}

// NewPlayer creates a paused player at position 0. duration is usually
// Store.Duration.
func NewPlayer(duration func() (float32, bool)) *Player {
	return &Player{duration: duration, rate: 1}
}

// Play starts playback at rate seconds per second. iterations <= 0 loops
// forever. A negative rate plays backwards.
func (p *Player) Play(rate float32, iterations int) {
	if rate == 0 {
		rate = 1
	}
	p.rate = rate
	p.iterations = iterations
	p.done = 0
	p.playing = true
}

// Pause stops playback, keeping the position.
func (p *Player) Pause() {
	p.playing = false
}

// Toggle flips between playing and paused, resuming with the last rate.
func (p *Player) Toggle() {
	if p.playing {
		p.Pause()
		return
	}
	p.Play(p.rate, p.iterations)
}

// Playing reports whether the player is running.
func (p *Player) Playing() bool {
	return p.playing
}

// Position returns the current position.
func (p *Player) Position() float32 {
	return p.pos
}

// Seek moves to pos, clamped into [0, duration].
func (p *Player) Seek(pos float32) {
	d, ok := p.duration()
	if !ok {
		p.pos = 0
		return
	}
	p.pos = math32.Max(0, math32.Min(pos, d))
}

// Update advances by dt seconds and returns the new position and whether it
// changed. The position wraps at either end until the iterations run out.
func (p *Player) Update(dt float32) (float32, bool) {
	d, ok := p.duration()
	if !p.playing || !ok || dt <= 0 {
		return p.pos, false
	}

	prev := p.pos
	next := p.pos + dt*p.rate
	if next >= d || next < 0 {
		p.done++
		if p.iterations > 0 && p.done >= p.iterations {
			p.playing = false
			if p.rate > 0 {
				next = d
			} else {
				next = 0
			}
		} else {
			next = math32.Mod(next, d)
			if next < 0 {
				next += d
			}
		}
	}
	p.pos = next
	return p.pos, p.pos != prev
}
