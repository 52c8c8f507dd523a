package tray

import "fyne.io/systray"

var (
	mPresets []*systray.MenuItem
	readyFn  func()

	quitLoop = systray.Quit
)

// Run shows the tray and blocks until Quit. onReady runs once the menu exists.
// It must be called from the main goroutine.
func Run(onReady func()) {
	readyFn = onReady
	systray.Run(onTrayReady, onTrayExit)
}

func onTrayReady() {
	menuMu.Lock()
	systray.SetIcon(iconFor(iconOn))
	systray.SetTooltip("soundloop")

	mPresets = make([]*systray.MenuItem, len(presetLabels))
	for i, label := range presetLabels {
		idx := i
		item := systray.AddMenuItem(label, "Set volume")
		go forward(item, func() { clickPreset(idx) })
		mPresets[i] = item
	}

	systray.AddSeparator()
	mToggle := systray.AddMenuItem("On/Off", "Mute or unmute")
	go forward(mToggle, clickToggle)

	systray.AddSeparator()
	mExit := systray.AddMenuItem("Exit", "Quit soundloop")
	go forward(mExit, Quit)

	menuReady = true
	menuMu.Unlock()

	if readyFn != nil {
		readyFn()
	}
}

func onTrayExit() {
	closeOnce.Do(func() { close(quitCh) })
}

// forward turns clicks into callbacks for the life of the process.
func forward(item *systray.MenuItem, fn func()) {
	for range item.ClickedCh {
		fn()
	}
}

// setIcon and setPresetTitle are called with menuMu held.
func setIcon(on bool) {
	systray.SetIcon(iconFor(on))
}

func setPresetTitle(index int, label string) {
	mPresets[index].SetTitle(label)
}
