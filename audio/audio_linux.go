//go:build linux

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/jfreymuth/pulse"
)

const errPollInterval = time.Second

type pulseContext struct {
	client *pulse.Client
}

func NewContext() (Context, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("soundloop"))
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	return &pulseContext{client: c}, nil
}

func (p *pulseContext) NewPlayback(config OutputConfig, render RenderFunc, onError ErrorFunc) (PlaybackDevice, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	var layout pulse.PlaybackOption
	switch config.Channels {
	case 1:
		layout = pulse.PlaybackMono
	case 2:
		layout = pulse.PlaybackStereo
	default:
		return nil, fmt.Errorf("pulse: unsupported channel count %d", config.Channels)
	}

	sink, err := p.client.DefaultSink()
	if err != nil {
		return nil, fmt.Errorf("pulse default sink: %w", err)
	}

	channels := int(config.Channels)
	reader := pulse.Float32Reader(func(buf []float32) (int, error) {
		frames := wholeFrames(buf, channels)
		render(frames)
		return len(frames), nil
	})

	stream, err := p.client.NewPlayback(reader,
		layout,
		pulse.PlaybackSink(sink),
		pulse.PlaybackSampleRate(int(config.SampleRate)),
		pulse.PlaybackLatency(config.Latency().Seconds()),
		pulse.PlaybackMediaName("soundloop"),
	)
	if err != nil {
		return nil, fmt.Errorf("pulse playback: %w", err)
	}

	return &pulsePlayback{
		stream:  stream,
		name:    sink.Name(),
		onError: onError,
	}, nil
}

func (p *pulseContext) Close() {
	p.client.Close()
}

type pulsePlayback struct {
	stream  *pulse.PlaybackStream
	name    string
	onError ErrorFunc

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (d *pulsePlayback) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil
	}

	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.stream.Start()

	// pulse has no error callback; poll the stream so a failure is reported once.
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
			if err := d.stream.Error(); err != nil && !reported {
				reported = true
				if d.onError != nil {
					d.onError(err)
				}
			}
		}
	}()
	return nil
}

func (d *pulsePlayback) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.stop = nil
	d.stream.Stop()
}

func (d *pulsePlayback) Close() {
	d.Stop()
	d.stream.Close()
}

func (d *pulsePlayback) DeviceName() string {
	return d.name
}
