// Package speech abstracts the host-provided speech capabilities behind small
// interfaces so the session controller and its tests do not depend on any
// concrete engine.
package speech

// Synthesizer speaks text aloud. At most one utterance is audible at a time:
// Speak preempts whatever is currently playing.
type Synthesizer interface {
	Speak(text string) error
	Cancel()
}

// Recognizer is a continuous speech-to-text capability. Results are delivered
// through the callbacks supplied at construction time.
type Recognizer interface {
	Start() error
	Stop()
}

// ResultFunc receives a transcribed segment. final is false for interim
// results that may still be revised by the engine.
type ResultFunc func(text string, final bool)

// EndFunc is called once when recognition ends, naturally or by error.
type EndFunc func(err error)

// RecognizerFactory builds a recognizer wired to the given callbacks.
type RecognizerFactory func(onResult ResultFunc, onEnd EndFunc) Recognizer

// NoopSynthesizer discards all speech output (quiet mode).
type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(string) error { return nil }
func (NoopSynthesizer) Cancel()            {}
