package assets

import _ "embed"

// Loop is the clip played on repeat. Regenerate with `go run gen_loop.go`.
//
//go:embed loop.wav
var Loop []byte
