package control

import (
	"fmt"
	"math"
	"time"

	"soundloop/log"
	"soundloop/playback"
)

// Reflector is the tray surface the dispatcher keeps in sync with the
// playback state. It never feeds back into playback.
type Reflector interface {
	SetOn(on bool) error
	SetPresetLabel(index int, label string) error
}

// Dispatcher is the single consumer of a Channel. It applies intents to the
// playback state in arrival order and then refreshes the tray.
type Dispatcher struct {
	ch      *Channel
	state   *playback.State
	ui      Reflector
	presets []float32
	idle    time.Duration
}

func NewDispatcher(ch *Channel, state *playback.State, ui Reflector, presets []float32, idle time.Duration) *Dispatcher {
	return &Dispatcher{ch: ch, state: state, ui: ui, presets: presets, idle: idle}
}

// Run applies intents until stop is closed. Receive timeouts are idle
// wake-ups used to check stop.
func (d *Dispatcher) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		in, ok := d.ch.Receive(d.idle)
		if !ok {
			continue
		}
		d.Apply(in)
	}
}

// Drain applies every queued intent and returns how many it applied.
func (d *Dispatcher) Drain() int {
	n := 0
	for {
		in, ok := d.ch.TryReceive()
		if !ok {
			return n
		}
		d.Apply(in)
		n++
	}
}

func (d *Dispatcher) Apply(in Intent) {
	switch in.Kind {
	case KindToggle:
		d.state.Toggle()
		d.reflectOn()
	case KindSetVolume:
		d.state.SetVolume(in.Level)
		d.reflectLabels()
	default:
		log.Warnf("ignoring %s", in)
		return
	}
	muted, vol := d.state.Snapshot()
	log.Intent(in.String(), muted, vol)
}

// Reflect pushes the whole state to the tray, e.g. once the menu exists.
func (d *Dispatcher) Reflect() {
	d.reflectOn()
	d.reflectLabels()
}

func (d *Dispatcher) reflectOn() {
	if err := d.ui.SetOn(d.state.On()); err != nil {
		log.Warnf("tray icon update failed: %v", err)
	}
}

func (d *Dispatcher) reflectLabels() {
	for i, label := range Labels(d.presets, d.state.Volume()) {
		if err := d.ui.SetPresetLabel(i, label); err != nil {
			log.Warnf("tray label %d update failed: %v", i, err)
		}
	}
}

// Labels returns the menu label for every preset, marking the one equal to
// current.
func Labels(presets []float32, current float32) []string {
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = PresetLabel(p, p == current)
	}
	return labels
}

// PresetLabel formats a preset as a percentage, e.g. "25%" or "25%  <".
func PresetLabel(level float32, current bool) string {
	label := fmt.Sprintf("%d%%", int(math.Round(float64(level)*100)))
	if current {
		return fmt.Sprintf("%-4s <", label)
	}
	return label
}
