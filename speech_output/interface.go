package speech_output

import "context"

// Interface is the asynchronous, interruptible sink for spoken
// acknowledgements. Speak never blocks the caller; Stop aborts only the
// utterance currently rendering; Shutdown flushes the queue sentinel and
// joins the worker, after which Speak is a no-op.
type Interface interface {
	Speak(text string)
	Stop()
	Shutdown()
}

// Synthesizer renders text to mono PCM16 samples and reports their sample
// rate.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]int16, int, error)
}

// Player renders PCM16 samples to the audio device, returning early with
// ctx.Err() when the context is cancelled mid-playback.
type Player interface {
	Play(ctx context.Context, samples []int16, sampleRate int) error
}
