package decoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"soundloop/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	mp3Channels = 2
	mp3BitDepth = 16
)

func decodeMP3(data []byte) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 frames: %w", err)
	}

	const frameBytes = mp3Channels * mp3BitDepth / 8
	n := len(pcm) / frameBytes * mp3Channels
	samples := make([]float32, n)
	div := scale(mp3BitDepth)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(pcm[i*2:]))) / div
	}
	return audio.NewBuffer(samples, mp3Channels, dec.SampleRate())
}
