package decoder

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"soundloop/audio"
)

func ramp(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i%200 - 100) * 300
	}
	return out
}

func encodeWAV(t *testing.T, data []int, channels, sampleRate, bitDepth int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("wav write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("wav close: %v", err)
	}
	f.Close()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func encodeFLAC(t *testing.T, data []int32, blockSize int) []byte {
	t.Helper()
	var out bytes.Buffer
	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(blockSize),
		BlockSizeMax:  uint16(blockSize),
		SampleRate:    48000,
		NChannels:     1,
		BitsPerSample: 16,
	}
	enc, err := flac.NewEncoder(&out, info)
	if err != nil {
		t.Fatalf("flac encoder: %v", err)
	}
	for i := 0; i < len(data); i += blockSize {
		block := data[i : i+blockSize]
		f := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(blockSize),
				SampleRate:    48000,
				Channels:      frame.ChannelsMono,
				BitsPerSample: 16,
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   block,
				NSamples:  blockSize,
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			t.Fatalf("flac frame: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("flac close: %v", err)
	}
	return out.Bytes()
}

func TestSniff(t *testing.T) {
	cases := []struct {
		data []byte
		want Format
	}{
		{[]byte("fLaC\x00\x00"), FormatFLAC},
		{[]byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatWAV},
		{[]byte("ID3\x04\x00"), FormatMP3},
		{[]byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
	}
	for _, c := range cases {
		got, err := Sniff(c.data)
		if err != nil {
			t.Errorf("Sniff(%q): %v", c.data, err)
			continue
		}
		if got != c.want {
			t.Errorf("Sniff(%q) = %s, want %s", c.data, got, c.want)
		}
	}
}

func TestSniffUnknown(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("OggS"), []byte("RIFF\x00\x00\x00\x00AVI ")} {
		if _, err := Sniff(data); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Sniff(%q) err = %v, want ErrUnknownFormat", data, err)
		}
	}
}

func TestDecodeWAV(t *testing.T) {
	src := ramp(2000)
	raw := encodeWAV(t, src, 1, 48000, 16)

	buf, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != 1 || buf.SampleRate() != 48000 {
		t.Errorf("got %d ch / %d Hz", buf.Channels(), buf.SampleRate())
	}
	if buf.Frames() != len(src) {
		t.Fatalf("Frames = %d, want %d", buf.Frames(), len(src))
	}
	for i, s := range buf.Samples() {
		want := float32(src[i]) / 32768
		if s != want {
			t.Fatalf("sample %d = %v, want %v", i, s, want)
		}
	}
}

func TestDecodeWAVStereo(t *testing.T) {
	raw := encodeWAV(t, ramp(1000), 2, 44100, 16)
	buf, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != 2 || buf.Frames() != 500 {
		t.Errorf("got %d ch, %d frames", buf.Channels(), buf.Frames())
	}
}

func TestDecodeFLAC(t *testing.T) {
	src := make([]int32, 512)
	for i := range src {
		src[i] = int32(i*64 - 16384)
	}
	raw := encodeFLAC(t, src, 256)

	buf, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Frames() != len(src) || buf.Channels() != 1 {
		t.Fatalf("got %d frames / %d ch", buf.Frames(), buf.Channels())
	}
	for i, s := range buf.Samples() {
		if want := float32(src[i]) / 32768; s != want {
			t.Fatalf("sample %d = %v, want %v", i, s, want)
		}
	}
}

func TestDecodeCorruptMP3(t *testing.T) {
	data := append([]byte{0xFF, 0xFB}, bytes.Repeat([]byte{0}, 16)...)
	if _, err := Decode(data); err == nil {
		t.Error("expected error for corrupt mp3")
	}
}

func TestDecodeMP3(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "speech.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	if f, err := Sniff(data); err != nil || f != FormatMP3 {
		t.Fatalf("Sniff = %q, %v", f, err)
	}

	buf, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != 2 {
		t.Errorf("channels = %d, want 2", buf.Channels())
	}
	if buf.SampleRate() != 22050 {
		t.Errorf("sample rate = %d, want 22050", buf.SampleRate())
	}
	if buf.Frames() < 22050 {
		t.Errorf("frames = %d, want at least one second", buf.Frames())
	}
	for i, s := range buf.Samples() {
		if s < -1 || s >= 1 {
			t.Fatalf("sample %d = %v, outside [-1, 1)", i, s)
		}
	}

	mono, err := Downmix(buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mono.Channels() != 1 || mono.Frames() != buf.Frames() || mono.SampleRate() != 22050 {
		t.Fatalf("mono: %d ch, %d frames, %d Hz", mono.Channels(), mono.Frames(), mono.SampleRate())
	}
	in := buf.Samples()
	for f, s := range mono.Samples() {
		if want := (in[2*f] + in[2*f+1]) / 2; s != want {
			t.Fatalf("mono frame %d = %v, want %v", f, s, want)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, err := Decode([]byte("not audio")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDownmixStereoToMono(t *testing.T) {
	in, err := audio.NewBuffer([]float32{0.5, 0.25, -1, 1, 0.2, 0.2}, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Downmix(in, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.375, 0, 0.2}
	if out.Channels() != 1 || out.Frames() != 3 {
		t.Fatalf("got %d ch, %d frames", out.Channels(), out.Frames())
	}
	for i, s := range out.Samples() {
		if math.Abs(float64(s-want[i])) > 1e-7 {
			t.Errorf("sample %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestDownmixMonoToStereo(t *testing.T) {
	in, _ := audio.NewBuffer([]float32{0.1, 0.2}, 1, 48000)
	out, err := Downmix(in, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.1, 0.1, 0.2, 0.2}
	for i, s := range out.Samples() {
		if s != want[i] {
			t.Errorf("sample %d = %v, want %v", i, s, want[i])
		}
	}
}

func TestDownmixSameChannelsIsIdentity(t *testing.T) {
	in, _ := audio.NewBuffer([]float32{0.1, 0.2}, 1, 48000)
	out, err := Downmix(in, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Error("expected the same buffer back")
	}
}

func TestDownmixUnsupported(t *testing.T) {
	in, _ := audio.NewBuffer(make([]float32, 6), 3, 48000)
	if _, err := Downmix(in, 2); err == nil {
		t.Error("expected error mapping 3 channels to 2")
	}
}
