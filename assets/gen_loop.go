//go:build ignore

package main

import (
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Every partial completes a whole number of cycles in the clip so the loop
// point is seamless.
func main() {
	const (
		sampleRate = 48000
		seconds    = 2
		gain       = 0.3
	)
	partials := []struct{ freq, amp float64 }{
		{110, 0.4}, {165, 0.25}, {220, 0.2}, {330, 0.1}, {440, 0.05},
	}

	n := sampleRate * seconds
	data := make([]int, n)
	for i := range data {
		t := float64(i) / sampleRate
		env := 0.75 + 0.25*math.Sin(2*math.Pi*0.5*t)
		var s float64
		for _, p := range partials {
			s += p.amp * math.Sin(2*math.Pi*p.freq*t)
		}
		s = math.Max(-1, math.Min(1, s*env*gain))
		data[i] = int(s * 32767)
	}

	f, err := os.Create("loop.wav")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		panic(err)
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}
}
