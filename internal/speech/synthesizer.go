package speech

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// CommandSynthesizer speaks through an external text-to-speech binary
// ("say" on macOS, "espeak" elsewhere, overridable via VOICEBANK_TTS_CMD).
// A new Speak call kills whatever utterance is still playing, so at most one
// is audible at a time.
type CommandSynthesizer struct {
	name string
	args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandSynthesizer resolves the TTS command from the environment
func NewCommandSynthesizer() *CommandSynthesizer {
	name, args := resolveTTSCommand()
	return &CommandSynthesizer{name: name, args: args}
}

func resolveTTSCommand() (string, []string) {
	if custom := strings.TrimSpace(os.Getenv("VOICEBANK_TTS_CMD")); custom != "" {
		fields := strings.Fields(custom)
		return fields[0], fields[1:]
	}
	if runtime.GOOS == "darwin" {
		return "say", nil
	}
	return "espeak", nil
}

// Speak cancels any utterance in progress and starts speaking text
func (s *CommandSynthesizer) Speak(text string) error {
	s.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.Command(s.name, append(append([]string{}, s.args...), text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start speech synthesis: %w", err)
	}
	s.cmd = cmd

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
	}()

	return nil
}

// Cancel stops the current utterance, if any
func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		s.cmd = nil
	}
}
