package playback

import (
	"sync/atomic"

	"soundloop/audio"
)

// Engine renders a Buffer on an endless loop. Render is called from the
// output device's thread; the frame index belongs to that thread alone and
// is only published for observers.
type Engine struct {
	buf   *audio.Buffer
	state *State

	frame int
	pos   atomic.Int64
}

func NewEngine(buf *audio.Buffer, state *State) *Engine {
	return &Engine{buf: buf, state: state}
}

// Seek sets the next frame to render. It must not race with Render, so it
// is only used before the device starts.
func (e *Engine) Seek(frame int) {
	total := e.buf.Frames()
	frame %= total
	if frame < 0 {
		frame += total
	}
	e.frame = frame
	e.pos.Store(int64(frame))
}

// Position returns the frame index the next Render starts at.
func (e *Engine) Position() int {
	return int(e.pos.Load())
}

// Render fills out with the next len(out)/channels frames of the loop.
// Mute and volume are read once, so a change lands on a buffer boundary.
// A trailing partial frame is zeroed without advancing the loop.
func (e *Engine) Render(out []float32) {
	muted, volume := e.state.Snapshot()

	src := e.buf.Samples()
	ch := e.buf.Channels()
	total := e.buf.Frames()
	frame := e.frame

	i := 0
	for ; i+ch <= len(out); i += ch {
		dst := out[i : i+ch]
		if muted {
			clear(dst)
		} else {
			off := frame * ch
			for c := range dst {
				dst[c] = src[off+c] * volume
			}
		}
		frame++
		if frame == total {
			frame = 0
		}
	}
	clear(out[i:])

	e.frame = frame
	e.pos.Store(int64(frame))
}
