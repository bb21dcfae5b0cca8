package internal

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// transcriber commands probed on PATH, in preference order. Each is
// expected to capture one utterance and print the transcript to stdout.
var transcriberCandidates = []string{"hear", "whisper-cli", "vosk-transcriber"}

// ErrVoiceUnavailable is returned when no speech recognizer is present
var ErrVoiceUnavailable = errors.New("speech recognition is not available on this system")

// VoiceInput is the optional voice capture capability. It exists only when
// the environment provides an external transcriber; callers must check
// Available before listening.
type VoiceInput struct {
	command string
	lookup  func(string) (string, error)

	mu        sync.Mutex
	listening bool
}

// NewVoiceInput probes the environment for a speech recognizer
func NewVoiceInput() *VoiceInput {
	v := &VoiceInput{lookup: exec.LookPath}
	for _, name := range transcriberCandidates {
		if _, err := v.lookup(name); err == nil {
			v.command = name
			break
		}
	}
	return v
}

// Available reports whether voice input can be used
func (v *VoiceInput) Available() bool {
	return v.command != ""
}

// Listening reports whether an utterance capture is in progress
func (v *VoiceInput) Listening() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listening
}

// Listen captures a single utterance and returns its transcript. The
// listening state is dropped on result, error, or natural end.
func (v *VoiceInput) Listen(ctx context.Context) (string, error) {
	if !v.Available() {
		return "", ErrVoiceUnavailable
	}

	v.mu.Lock()
	if v.listening {
		v.mu.Unlock()
		return "", errors.New("already listening")
	}
	v.listening = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.listening = false
		v.mu.Unlock()
	}()

	out, err := exec.CommandContext(ctx, v.command).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
