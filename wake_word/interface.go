package wake_word

import (
	"errors"

	"jarvis-voice-assistant/audio_source"
)

// ErrDetectorUnavailable is returned when no wake-word classifier could be
// initialized. Non-fatal: the caller proceeds with an empty pre-roll.
var ErrDetectorUnavailable = errors.New("wake word classifier unavailable")

// Classifier is the acoustic wake-phrase engine. Process consumes one frame
// of FrameLength PCM16 samples and returns the index of the matched keyword,
// or a negative value when nothing matched.
type Classifier interface {
	FrameLength() int
	Process(samples []int16) (int, error)
	Close() error
}

// Interface blocks until the wake phrase is detected and returns the pre-roll
// frames (oldest first) buffered in the window preceding detection.
type Interface interface {
	Listen(src audio_source.Interface) ([][]int16, error)
}
