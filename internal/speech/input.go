package speech

import (
	"fmt"
	"strings"
	"sync"
)

// InputAdapter wraps a continuous recognizer and accumulates only the
// finalized segments into a running transcript. Each time a segment is
// finalized the whole transcript is mirrored to the pending-input sink,
// overwriting whatever was there before.
type InputAdapter struct {
	mu         sync.Mutex
	rec        Recognizer
	listening  bool
	transcript string
	mirror     func(transcript string)
	done       chan struct{}
}

// NewInputAdapter builds an adapter around the recognizer produced by
// factory. mirror receives the accumulated transcript after every finalized
// segment.
func NewInputAdapter(factory RecognizerFactory, mirror func(string)) *InputAdapter {
	a := &InputAdapter{mirror: mirror}
	a.rec = factory(a.handleResult, a.handleEnd)
	return a
}

// Toggle flips listening on or off
func (a *InputAdapter) Toggle() error {
	a.mu.Lock()
	if a.listening {
		a.mu.Unlock()
		a.rec.Stop()
		return nil
	}
	a.listening = true
	a.done = make(chan struct{})
	a.mu.Unlock()

	if err := a.rec.Start(); err != nil {
		a.mu.Lock()
		a.listening = false
		close(a.done)
		a.mu.Unlock()
		return fmt.Errorf("failed to start recognition: %w", err)
	}
	return nil
}

// Listening reports whether recognition is currently active
func (a *InputAdapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Transcript returns the accumulated finalized text
func (a *InputAdapter) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript
}

// Reset clears the accumulated transcript, typically after it has been
// submitted as a message
func (a *InputAdapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transcript = ""
}

// Done returns a channel closed when the current recognition session ends.
// Returns nil if no session was started.
func (a *InputAdapter) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

func (a *InputAdapter) handleResult(text string, final bool) {
	if !final {
		// Interim results are discarded; only finalized segments count
		return
	}

	a.mu.Lock()
	if a.transcript == "" {
		a.transcript = strings.TrimSpace(text)
	} else {
		a.transcript = a.transcript + " " + strings.TrimSpace(text)
	}
	transcript := a.transcript
	mirror := a.mirror
	a.mu.Unlock()

	if mirror != nil {
		mirror(transcript)
	}
}

func (a *InputAdapter) handleEnd(err error) {
	a.mu.Lock()
	wasListening := a.listening
	a.listening = false
	done := a.done
	a.mu.Unlock()

	// No automatic restart: the listening indicator simply drops
	if wasListening && done != nil {
		close(done)
	}
	_ = err
}
