package control

import "fmt"

type Kind int

const (
	KindSetVolume Kind = iota
	KindToggle
)

// Intent is one user action from the tray menu.
type Intent struct {
	Kind  Kind
	Level float32 // only for KindSetVolume
}

func SetVolume(level float32) Intent { return Intent{Kind: KindSetVolume, Level: level} }
func Toggle() Intent                 { return Intent{Kind: KindToggle} }

func (i Intent) String() string {
	switch i.Kind {
	case KindSetVolume:
		return fmt.Sprintf("set_volume(%.2f)", i.Level)
	case KindToggle:
		return "toggle"
	}
	return fmt.Sprintf("unknown(%d)", int(i.Kind))
}
