package shutdown

import (
	"os"
	"os/signal"
)

// OnSignal calls fn on the first termination signal the process receives.
func OnSignal(fn func(os.Signal)) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	go func() {
		fn(<-ch)
	}()
}
