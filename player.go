package main

import (
	"fmt"

	"soundloop/audio"
	"soundloop/config"
	"soundloop/control"
	"soundloop/decoder"
	"soundloop/log"
	"soundloop/playback"
)

// player wires the decoded clip, the shared state, the render engine and the
// output device together. It lives for the whole process.
type player struct {
	cfg     config.Config
	clip    *audio.Buffer
	state   *playback.State
	engine  *playback.Engine
	device  audio.PlaybackDevice
	intents *control.Channel
}

func (p *player) outputConfig() audio.OutputConfig {
	return audio.OutputConfig{
		SampleRate:   p.cfg.SampleRate,
		Channels:     p.cfg.Channels,
		BufferFrames: p.cfg.BufferFrames,
	}
}

func loadClip(cfg config.Config, data []byte) (*audio.Buffer, error) {
	buf, err := decoder.Decode(data)
	if err != nil {
		return nil, err
	}
	if buf.SampleRate() != int(cfg.SampleRate) {
		log.Warnf("clip is %d Hz but output runs at %d Hz, pitch will shift", buf.SampleRate(), cfg.SampleRate)
	}
	return decoder.Downmix(buf, int(cfg.Channels))
}

func newPlayer(ctx audio.Context, cfg config.Config, clipData []byte) (*player, error) {
	clip, err := loadClip(cfg, clipData)
	if err != nil {
		return nil, fmt.Errorf("decoding clip: %w", err)
	}

	p := &player{
		cfg:     cfg,
		clip:    clip,
		state:   playback.NewState(cfg.DefaultVolume),
		intents: control.NewChannel(),
	}
	p.engine = playback.NewEngine(clip, p.state)

	p.device, err = ctx.NewPlayback(p.outputConfig(), p.engine.Render, log.StreamError)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	return p, nil
}

func (p *player) start() error {
	if err := p.device.Start(); err != nil {
		return fmt.Errorf("starting output: %w", err)
	}
	return nil
}

func (p *player) dispatcher(ui control.Reflector) *control.Dispatcher {
	return control.NewDispatcher(p.intents, p.state, ui, p.cfg.Presets, p.cfg.IdlePoll)
}

// selectPreset and toggle are the tray click handlers: they only enqueue.
func (p *player) selectPreset(index int) {
	if index < 0 || index >= len(p.cfg.Presets) {
		return
	}
	p.intents.Send(control.SetVolume(p.cfg.Presets[index]))
}

func (p *player) toggle() {
	p.intents.Send(control.Toggle())
}

func (p *player) startupLine(version string) string {
	return fmt.Sprintf("soundloop %s: %s, clip %.2fs (%s)",
		version, p.outputConfig(), p.clip.Duration().Seconds(), p.device.DeviceName())
}

func (p *player) startupInfo(version string) log.StartupInfo {
	name := p.device.DeviceName()
	return log.StartupInfo{
		Version:      version,
		SampleRate:   p.cfg.SampleRate,
		Channels:     p.cfg.Channels,
		BufferFrames: p.cfg.BufferFrames,
		Device:       name,
		Bluetooth:    audio.IsBluetooth(name),
		ClipFrames:   p.clip.Frames(),
		ClipRate:     p.clip.SampleRate(),
		Volume:       p.state.Volume(),
	}
}
