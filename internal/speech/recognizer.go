package speech

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// LineRecognizer is a recognition capability fed by lines of text, standing in
// for a microphone engine in terminal sessions. Every non-empty line is
// delivered as one finalized segment; an empty line ends the session the way
// a real recognizer ends on silence.
type LineRecognizer struct {
	r        io.Reader
	onResult ResultFunc
	onEnd    EndFunc

	mu      sync.Mutex
	running bool
	stopped bool
}

// NewLineRecognizer creates a line-fed recognizer over r
func NewLineRecognizer(r io.Reader, onResult ResultFunc, onEnd EndFunc) *LineRecognizer {
	return &LineRecognizer{
		r:        r,
		onResult: onResult,
		onEnd:    onEnd,
	}
}

// Start begins reading segments. Calling Start while already running is an
// error; the capability supports a single session at a time.
func (l *LineRecognizer) Start() error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return fmt.Errorf("recognition already started")
	}
	l.running = true
	l.stopped = false
	l.mu.Unlock()

	go l.listen()
	return nil
}

// Stop ends the session after the current read completes
func (l *LineRecognizer) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
}

func (l *LineRecognizer) listen() {
	scanner := bufio.NewScanner(l.r)

	for scanner.Scan() {
		l.mu.Lock()
		stopped := l.stopped
		l.mu.Unlock()
		if stopped {
			break
		}

		line := scanner.Text()
		if line == "" {
			// End of speech
			break
		}
		if l.onResult != nil {
			l.onResult(line, true)
		}
	}

	l.mu.Lock()
	l.running = false
	l.mu.Unlock()

	if l.onEnd != nil {
		l.onEnd(scanner.Err())
	}
}
