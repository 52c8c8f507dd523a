package audio

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unsafe"
)

var ErrBadFrames = errors.New("sample count is not a whole number of frames")

// Buffer is a decoded clip held in memory as interleaved float32 samples.
// It is never mutated after NewBuffer returns.
type Buffer struct {
	samples    []float32
	channels   int
	sampleRate int
}

func NewBuffer(samples []float32, channels, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(samples) == 0 {
		return nil, errors.New("empty sample buffer")
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%d samples, %d channels: %w", len(samples), channels, ErrBadFrames)
	}
	return &Buffer{samples: samples, channels: channels, sampleRate: sampleRate}, nil
}

func (b *Buffer) Samples() []float32 { return b.samples }
func (b *Buffer) Channels() int       { return b.channels }
func (b *Buffer) SampleRate() int     { return b.sampleRate }
func (b *Buffer) Frames() int         { return len(b.samples) / b.channels }

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.sampleRate)
}

// RenderFunc fills out with the next interleaved samples. It runs on the
// device's own thread and must not block or allocate.
type RenderFunc func(out []float32)

// ErrorFunc receives errors the device reports after the stream started.
type ErrorFunc func(err error)

type OutputConfig struct {
	SampleRate   uint32
	Channels     uint32
	BufferFrames uint32
}

func (c OutputConfig) String() string {
	return fmt.Sprintf("%d Hz, %d ch, buffer %d frames", c.SampleRate, c.Channels, c.BufferFrames)
}

// Latency is the duration of one device buffer.
func (c OutputConfig) Latency() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.BufferFrames) * time.Second / time.Duration(c.SampleRate)
}

func (c OutputConfig) validate() error {
	if c.SampleRate == 0 || c.Channels == 0 || c.BufferFrames == 0 {
		return fmt.Errorf("incomplete output config: %s", c)
	}
	return nil
}

type Context interface {
	NewPlayback(config OutputConfig, render RenderFunc, onError ErrorFunc) (PlaybackDevice, error)
	Close()
}

type PlaybackDevice interface {
	Start() error
	Stop()
	Close()
	DeviceName() string
}

var btKeywords = []string{
	"airpods", "beats", "bose", "wh-1000", "wf-1000",
	"sony wh-", "sony wf-",
	"jabra", "galaxy buds", "pixel buds", "powerbeats",
	"jbl ", "sennheiser momentum", "plantronics",
	"tozo", "anker soundcore", "skullcandy",
	"bluetooth", "bluez", " bt ", " bt)", " bt]",
}

// IsBluetooth guesses from the device name whether output goes over
// Bluetooth, where the fixed buffer size adds noticeable latency.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// float32View reinterprets a little-endian byte buffer as float32 samples
// without copying. Trailing bytes that do not form a sample are ignored.
// b must be 4-byte aligned; the malgo and oto output buffers always are.
func float32View(b []byte) []float32 {
	n := len(b) / 4
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n)
}

// wholeFrames trims buf to a multiple of channels.
func wholeFrames(buf []float32, channels int) []float32 {
	return buf[:len(buf)/channels*channels]
}
