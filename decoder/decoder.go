package decoder

import (
	"bytes"
	"errors"
	"fmt"

	"soundloop/audio"
)

var ErrUnknownFormat = errors.New("unrecognized audio container")

type Format string

const (
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
	FormatWAV  Format = "wav"
)

// Sniff identifies the container from its leading bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC, nil
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, nil
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3, nil
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3, nil
	}
	return "", ErrUnknownFormat
}

// Decode turns an encoded clip into normalized float32 samples.
func Decode(data []byte) (*audio.Buffer, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	var buf *audio.Buffer
	switch format {
	case FormatMP3:
		buf, err = decodeMP3(data)
	case FormatFLAC:
		buf, err = decodeFLAC(data)
	case FormatWAV:
		buf, err = decodeWAV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return buf, nil
}

// Downmix converts buf to the given channel count. Many-to-mono averages the
// channels of each frame; mono-to-many duplicates the sample.
func Downmix(buf *audio.Buffer, channels int) (*audio.Buffer, error) {
	src := buf.Channels()
	if src == channels {
		return buf, nil
	}

	frames := buf.Frames()
	in := buf.Samples()
	out := make([]float32, frames*channels)

	switch {
	case channels == 1:
		for f := 0; f < frames; f++ {
			var sum float32
			for c := 0; c < src; c++ {
				sum += in[f*src+c]
			}
			out[f] = sum / float32(src)
		}
	case src == 1:
		for f := 0; f < frames; f++ {
			for c := 0; c < channels; c++ {
				out[f*channels+c] = in[f]
			}
		}
	default:
		return nil, fmt.Errorf("cannot map %d channels to %d", src, channels)
	}
	return audio.NewBuffer(out, channels, buf.SampleRate())
}

// scale returns the divisor that maps signed integer PCM of the given bit
// depth onto [-1, 1).
func scale(bitDepth int) float32 {
	return float32(int64(1) << (bitDepth - 1))
}
