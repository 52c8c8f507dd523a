//go:build !linux

package main

import "runtime"

// The tray toolkit must own the process main thread on macOS and Windows.
func init() {
	runtime.LockOSThread()
}

func main() {
	run()
}
