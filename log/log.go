package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady atomic.Bool
	pid      int
	dir      string
)

const diagFileName = "diagnostics_log.txt"

// ResolveDir returns the OS-specific log directory.
func ResolveDir() (string, error) {
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error
	diagFile, err = os.OpenFile(filepath.Join(dir, diagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady.Store(true)
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	logReady.Store(false)
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
}

func Info(msg string) {
	if logReady.Load() {
		diagLog.Info().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady.Load() {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

type StartupInfo struct {
	Version      string
	SampleRate   uint32
	Channels     uint32
	BufferFrames uint32
	Device       string
	Bluetooth    bool
	ClipFrames   int
	ClipRate     int
	Volume       float32
}

func Startup(s StartupInfo) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("version", s.Version).
		Uint32("sample_rate", s.SampleRate).
		Uint32("channels", s.Channels).
		Uint32("buffer_frames", s.BufferFrames).
		Str("device", s.Device).
		Bool("bluetooth", s.Bluetooth).
		Int("clip_frames", s.ClipFrames).
		Int("clip_rate", s.ClipRate).
		Float32("volume", s.Volume).
		Msg("startup")
}

func Intent(kind string, muted bool, volume float32) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("intent", kind).
		Bool("muted", muted).
		Float32("volume", volume).
		Msg("intent_applied")
}

func StreamError(err error) {
	if !logReady.Load() {
		return
	}
	diagLog.Error().Err(err).Msg("stream_error")
}

func Shutdown(reason string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().Str("reason", reason).Msg("shutdown")
}
