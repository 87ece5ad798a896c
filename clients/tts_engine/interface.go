package tts_engine

import "context"

// TTSEngineAPI is the remote speech-synthesis service. Synthesize returns the
// rendered utterance as mono PCM16 samples plus their sample rate.
type TTSEngineAPI interface {
	Synthesize(ctx context.Context, text string) ([]int16, int, error)
}
