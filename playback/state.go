package playback

import (
	"math"
	"sync/atomic"
)

// State holds the control parameters shared between the control loop, which
// is the only writer, and the render callback, which only reads. Both fields
// are atomics so the render path never waits on a lock.
type State struct {
	muted  atomic.Bool
	volume atomic.Uint32 // math.Float32bits
}

// NewState returns a State that is on (unmuted) at the given volume.
func NewState(volume float32) *State {
	s := &State{}
	s.SetVolume(volume)
	return s
}

func (s *State) Muted() bool { return s.muted.Load() }
func (s *State) On() bool    { return !s.muted.Load() }

func (s *State) SetMuted(muted bool) { s.muted.Store(muted) }

// Toggle flips between on and off and returns the new muted value.
func (s *State) Toggle() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *State) Volume() float32 {
	return math.Float32frombits(s.volume.Load())
}

// SetVolume stores v clamped to [0, 1]. NaN is treated as silence.
func (s *State) SetVolume(v float32) {
	switch {
	case v != v || v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	s.volume.Store(math.Float32bits(v))
}

// Snapshot reads both parameters for one render call.
func (s *State) Snapshot() (muted bool, volume float32) {
	return s.muted.Load(), s.Volume()
}
