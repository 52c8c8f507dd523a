package decoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/wav"

	"soundloop/audio"
)

const wavFormatFloat = 3 // WAVE_FORMAT_IEEE_FLOAT

func decodeWAV(data []byte) (*audio.Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if dec.WavAudioFormat == wavFormatFloat {
		return nil, errors.New("IEEE float WAV is not supported")
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth %d", bitDepth)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading WAV samples: %w", err)
	}

	div := scale(bitDepth)
	samples := make([]float32, len(pcm.Data))
	for i, s := range pcm.Data {
		samples[i] = float32(s) / div
	}
	return audio.NewBuffer(samples, pcm.Format.NumChannels, pcm.Format.SampleRate)
}
