package speech_to_text

import "errors"

// ErrRecognizerUnavailable is returned when the speech-to-text engine could
// not be initialized. A session against an unavailable recognizer yields an
// empty transcript immediately rather than hanging.
var ErrRecognizerUnavailable = errors.New("speech recognizer unavailable")

// Interface is a single recognition session over a shared acoustic model.
// Reset starts a fresh session, Accept feeds it one PCM16 frame at a time,
// Partial returns the best in-progress transcript so far, and Final returns
// the authoritative transcript for everything accepted since the last Reset.
type Interface interface {
	Reset() error
	Accept(samples []int16) error
	Partial() string
	Final() (string, error)
}
