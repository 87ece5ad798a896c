package transcription

import "jarvis-voice-assistant/audio_source"

// Interface runs one endpointed transcription cycle. The session is primed
// with the wake-word pre-roll, then consumes live frames until silence or the
// maximum duration ends it. onPartial is invoked for every new, distinct
// partial transcript and once more with the final transcript when it differs
// from the last partial. The final transcript is also returned.
type Interface interface {
	Run(src audio_source.Interface, preroll [][]int16, onPartial func(string)) (string, error)
}
