package tray

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotReady = errors.New("tray menu not ready")

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	presetFn func(int)
	toggleFn func()

	menuMu       sync.Mutex
	presetLabels []string
	iconOn       = true
	menuReady    bool
)

func OnPreset(fn func(index int)) { presetFn = fn }
func OnToggle(fn func())          { toggleFn = fn }

// SetPresets sets the initial volume labels. It must be called before Run.
func SetPresets(labels []string) {
	menuMu.Lock()
	presetLabels = append([]string(nil), labels...)
	menuMu.Unlock()
}

// SetInitialOn selects the icon shown when the tray appears.
func SetInitialOn(on bool) {
	menuMu.Lock()
	iconOn = on
	menuMu.Unlock()
}

// Done is closed once the user picks Exit or Quit is called.
func Done() <-chan struct{} {
	return quitCh
}

func Quit() {
	closeOnce.Do(func() {
		close(quitCh)
		quitLoop()
	})
}

// UI applies playback state to the tray icon and menu.
type UI struct{}

func (UI) SetOn(on bool) error {
	menuMu.Lock()
	defer menuMu.Unlock()
	iconOn = on
	if !menuReady {
		return ErrNotReady
	}
	setIcon(on)
	return nil
}

func (UI) SetPresetLabel(index int, label string) error {
	menuMu.Lock()
	defer menuMu.Unlock()
	if index < 0 || index >= len(presetLabels) {
		return fmt.Errorf("preset index %d out of range [0, %d)", index, len(presetLabels))
	}
	presetLabels[index] = label
	if !menuReady {
		return ErrNotReady
	}
	setPresetTitle(index, label)
	return nil
}

func clickPreset(index int) {
	if presetFn != nil {
		presetFn(index)
	}
}

func clickToggle() {
	if toggleFn != nil {
		toggleFn()
	}
}
