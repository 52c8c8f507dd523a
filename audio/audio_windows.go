//go:build windows

package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const errPollInterval = time.Second

// oto allows a single context per process, so it is created lazily on the
// first NewPlayback call.
type otoContext struct {
	mu  sync.Mutex
	ctx *oto.Context
}

func NewContext() (Context, error) {
	return &otoContext{}, nil
}

func (o *otoContext) NewPlayback(config OutputConfig, render RenderFunc, onError ErrorFunc) (PlaybackDevice, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx != nil {
		return nil, errors.New("oto: playback already open")
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(config.SampleRate),
		ChannelCount: int(config.Channels),
		Format:       oto.FormatFloat32LE,
		BufferSize:   config.Latency(),
	})
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready
	o.ctx = ctx

	player := ctx.NewPlayer(&otoReader{render: render, channels: int(config.Channels)})
	player.SetBufferSize(int(config.BufferFrames) * int(config.Channels) * 4)

	return &otoPlayback{ctx: ctx, player: player, onError: onError}, nil
}

func (o *otoContext) Close() {}

// otoReader adapts a RenderFunc to the io.Reader oto pulls float32 bytes from.
type otoReader struct {
	render   RenderFunc
	channels int
}

func (r *otoReader) Read(p []byte) (int, error) {
	out := wholeFrames(float32View(p), r.channels)
	r.render(out)
	return len(out) * 4, nil
}

type otoPlayback struct {
	ctx     *oto.Context
	player  *oto.Player
	onError ErrorFunc

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (d *otoPlayback) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil
	}

	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.player.Play()

	go func() {
		defer close(d.done)
		ticker := time.NewTicker(errPollInterval)
		defer ticker.Stop()
		reported := false
		for {
			select {
			case <-d.stop:
				return
			case <-ticker.C:
			}
			err := d.player.Err()
			if err == nil {
				err = d.ctx.Err()
			}
			if err != nil && !reported {
				reported = true
				if d.onError != nil {
					d.onError(err)
				}
			}
		}
	}()
	return nil
}

func (d *otoPlayback) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.stop = nil
	d.player.Pause()
}

func (d *otoPlayback) Close() {
	d.Stop()
	d.player.Close()
}

func (d *otoPlayback) DeviceName() string {
	return "system default"
}
