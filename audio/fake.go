package audio

import (
	"errors"
	"sync"
	"time"
)

// FakeContext opens playback devices that call the render func without any
// audio hardware. With realtime set, a started device pulls one buffer per
// buffer duration like a real device would; otherwise callers drive it with Pull.
type FakeContext struct {
	realtime bool

	mu   sync.Mutex
	last *FakePlayback
}

func NewFakeContext(realtime bool) *FakeContext {
	return &FakeContext{realtime: realtime}
}

func (f *FakeContext) NewPlayback(config OutputConfig, render RenderFunc, onError ErrorFunc) (PlaybackDevice, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if render == nil {
		return nil, errors.New("nil render func")
	}
	p := &FakePlayback{
		config:   config,
		render:   render,
		onError:  onError,
		realtime: f.realtime,
		out:      make([]float32, config.BufferFrames*config.Channels),
	}
	f.mu.Lock()
	f.last = p
	f.mu.Unlock()
	return p, nil
}

func (f *FakeContext) Close() {}

// Last returns the most recently opened device.
func (f *FakeContext) Last() *FakePlayback {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type FakePlayback struct {
	config   OutputConfig
	render   RenderFunc
	onError  ErrorFunc
	realtime bool
	out      []float32

	mu       sync.Mutex
	calls    int
	stopCh   chan struct{}
	feedDone chan struct{}
}

func (f *FakePlayback) DeviceName() string { return "fake" }

// Pull requests one buffer of the given number of frames and returns a copy
// of what the render func produced.
func (f *FakePlayback) Pull(frames int) []float32 {
	buf := make([]float32, frames*int(f.config.Channels))
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.render(buf)
	return buf
}

// Calls reports how many buffers were requested so far.
func (f *FakePlayback) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Fail reports err the way a device stream error would be reported.
func (f *FakePlayback) Fail(err error) {
	if f.onError != nil {
		f.onError(err)
	}
}

func (f *FakePlayback) Start() error {
	if !f.realtime {
		return nil
	}
	f.mu.Lock()
	if f.stopCh != nil {
		f.mu.Unlock()
		return nil
	}
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})
	stopCh, feedDone := f.stopCh, f.feedDone
	f.mu.Unlock()

	interval := time.Duration(f.config.BufferFrames) * time.Second / time.Duration(f.config.SampleRate)
	go func() {
		defer close(feedDone)
		for {
			f.mu.Lock()
			f.calls++
			f.mu.Unlock()
			f.render(f.out)

			select {
			case <-stopCh:
				return
			case <-time.After(interval):
			}
		}
	}()
	return nil
}

func (f *FakePlayback) Stop() {
	f.mu.Lock()
	stopCh, feedDone := f.stopCh, f.feedDone
	f.stopCh, f.feedDone = nil, nil
	f.mu.Unlock()
	if stopCh == nil {
		return
	}
	close(stopCh)
	<-feedDone
}

func (f *FakePlayback) Close() {
	f.Stop()
}
