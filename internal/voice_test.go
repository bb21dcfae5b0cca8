package internal

import (
	"context"
	"errors"
	"testing"
)

func TestVoiceInput_Unavailable(t *testing.T) {
	v := &VoiceInput{}
	if v.Available() {
		t.Error("Available() = true, want false without a transcriber")
	}

	_, err := v.Listen(context.Background())
	if !errors.Is(err, ErrVoiceUnavailable) {
		t.Errorf("Listen() error = %v, want ErrVoiceUnavailable", err)
	}
}

func TestVoiceInput_ProbeMiss(t *testing.T) {
	v := &VoiceInput{lookup: func(string) (string, error) {
		return "", errors.New("not found")
	}}
	for _, name := range transcriberCandidates {
		if _, err := v.lookup(name); err == nil {
			t.Fatalf("lookup(%s) should miss", name)
		}
	}
	if v.Available() {
		t.Error("Available() = true, want false")
	}
}

func TestVoiceInput_ListenTrimsTranscript(t *testing.T) {
	// echo prints a trailing newline the transcript should not keep
	v := &VoiceInput{command: "echo"}
	text, err := v.Listen(context.Background())
	if err != nil {
		t.Skipf("echo unavailable: %v", err)
	}
	if text != "" {
		t.Errorf("Listen() = %q, want empty transcript", text)
	}
	if v.Listening() {
		t.Error("Listening() should be false after the capture ends")
	}
}
