package audio_source

// Interface is the single microphone input stream. ReadFrame blocks until
// exactly n mono PCM16 samples at SampleRate are available. Callers with
// different frame lengths (wake classifier vs transcription chunk) may
// interleave reads; the stream position advances monotonically.
type Interface interface {
	ReadFrame(n int) ([]int16, error)
	Close() error
}
