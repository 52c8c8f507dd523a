//go:build !linux && !windows

package audio

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"soundloop/log"
)

type malgoContext struct {
	ctx *malgo.AllocatedContext
}

func NewContext() (Context, error) {
	m := &malgoContext{}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, m.logProc)
	if err != nil {
		return nil, fmt.Errorf("malgo: %w", err)
	}
	m.ctx = ctx
	return m, nil
}

// logProc receives every miniaudio message with its level stripped, so they
// go to the diagnostics log as plain info lines. Stream failures are reported
// by the Stop callback instead.
func (m *malgoContext) logProc(message string) {
	if message = strings.TrimSpace(message); message != "" {
		log.Info("miniaudio: " + message)
	}
}

func (m *malgoContext) defaultName() string {
	devices, err := m.ctx.Devices(malgo.Playback)
	if err != nil {
		return "system default"
	}
	for _, d := range devices {
		if d.IsDefault != 0 {
			return d.Name()
		}
	}
	return "system default"
}

func (m *malgoContext) NewPlayback(config OutputConfig, render RenderFunc, onError ErrorFunc) (PlaybackDevice, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = config.Channels
	deviceConfig.SampleRate = config.SampleRate
	deviceConfig.PeriodSizeInFrames = config.BufferFrames

	p := &malgoPlayback{}
	channels := int(config.Channels)
	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			out := float32View(pOutput)
			if n := int(frameCount) * channels; n < len(out) {
				out = out[:n]
			}
			render(out)
		},
		Stop: func() {
			if !p.stopping.Load() && onError != nil {
				onError(errors.New("playback device stopped"))
			}
		},
	}

	dev, err := malgo.InitDevice(m.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("malgo playback device: %w", err)
	}

	p.device = dev
	p.name = m.defaultName()
	return p, nil
}

func (m *malgoContext) Close() {
	m.ctx.Uninit()
	m.ctx.Free()
}

type malgoPlayback struct {
	device   *malgo.Device
	name     string
	stopping atomic.Bool
}

func (p *malgoPlayback) Start() error {
	p.stopping.Store(false)
	return p.device.Start()
}

func (p *malgoPlayback) Stop() {
	p.stopping.Store(true)
	p.device.Stop()
}

func (p *malgoPlayback) Close() {
	p.stopping.Store(true)
	p.device.Uninit()
}

func (p *malgoPlayback) DeviceName() string {
	return p.name
}
