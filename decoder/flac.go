package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"soundloop/audio"
)

func decodeFLAC(data []byte) (*audio.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing flac stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	div := scale(int(info.BitsPerSample))

	samples := make([]float32, 0, int(info.NSamples)*channels)
	for {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing flac frame: %w", err)
		}
		if len(f.Subframes) != channels {
			return nil, fmt.Errorf("flac frame has %d subframes, stream has %d channels", len(f.Subframes), channels)
		}
		for i := 0; i < int(f.BlockSize); i++ {
			for c := 0; c < channels; c++ {
				samples = append(samples, float32(f.Subframes[c].Samples[i])/div)
			}
		}
	}
	return audio.NewBuffer(samples, channels, int(info.SampleRate))
}
