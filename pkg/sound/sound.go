// Package sound plays the countdown-expiry alarm through whatever audio
// player the host provides. A configured sound file is used when present;
// otherwise a short synthesized tone is written to a temp file and played.
package sound

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Alarm plays the expiry sound. Path may be empty, in which case the
// fallback tone is used.
type Alarm struct {
	Path string
}

// Play resolves the sound file and hands it to the host's audio player. The
// caller treats failures as non-fatal; an expiry sweep never aborts because
// audio is unavailable.
func (a Alarm) Play(ctx context.Context) error {
	path := a.Path
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path == "" {
		tone, err := fallbackTone()
		if err != nil {
			return err
		}
		path = tone
	}

	name, args, err := playerCommand(path)
	if err != nil {
		return err
	}
	return exec.CommandContext(ctx, name, args...).Run()
}

// playerCommand picks an audio player for the current platform, preferring
// the first one present on PATH.
func playerCommand(path string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", []string{path}, nil
	case "windows":
		script := "(New-Object Media.SoundPlayer '" + path + "').PlaySync()"
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	}

	candidates := [][]string{
		{"paplay", path},
		{"aplay", "-q", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
		{"mpg123", "-q", path},
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return c[0], c[1:], nil
		}
	}
	return "", nil, errors.New("sound: no audio player found on PATH")
}

// fallbackTone writes the synthesized alarm tone beside the temp dir once
// and reuses it on later plays.
func fallbackTone() (string, error) {
	path := filepath.Join(os.TempDir(), "remind-alarm.wav")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, toneWAV(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

const (
	toneRate    = 8000 // samples per second
	toneHz      = 880.0
	toneSeconds = 1
)

// toneWAV renders a one-second 880Hz sine as an 8-bit mono PCM WAV.
func toneWAV() []byte {
	samples := toneRate * toneSeconds
	data := make([]byte, samples)
	for i := range data {
		v := math.Sin(2 * math.Pi * toneHz * float64(i) / toneRate)
		data[i] = byte(128 + 100*v)
	}

	buf := make([]byte, 0, 44+len(data))
	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v)
		return b
	}

	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(uint32(36+len(data)))...)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)           // fmt chunk size
	buf = append(buf, u16(1)...)            // PCM
	buf = append(buf, u16(1)...)            // mono
	buf = append(buf, u32(toneRate)...)     // sample rate
	buf = append(buf, u32(toneRate)...)     // byte rate (8-bit mono)
	buf = append(buf, u16(1)...)            // block align
	buf = append(buf, u16(8)...)            // bits per sample
	buf = append(buf, "data"...)
	buf = append(buf, u32(uint32(len(data)))...)
	buf = append(buf, data...)
	return buf
}
