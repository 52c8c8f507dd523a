package config

import "time"

const (
	SampleRate   = 48000
	Channels     = 1
	BufferFrames = 8192 // 8192, 16384

	DefaultVolume = 0.25
	IdlePoll      = 100 * time.Millisecond
)

// Presets are the volume levels offered in the tray menu, in menu order.
var Presets = []float32{0.10, 0.25, 1.00}

type Config struct {
	SampleRate    uint32
	Channels      uint32
	BufferFrames  uint32
	DefaultVolume float32
	Presets       []float32
	IdlePoll      time.Duration
}

func Default() Config {
	return Config{
		SampleRate:    SampleRate,
		Channels:      Channels,
		BufferFrames:  BufferFrames,
		DefaultVolume: DefaultVolume,
		Presets:       append([]float32(nil), Presets...),
		IdlePoll:      IdlePoll,
	}
}
