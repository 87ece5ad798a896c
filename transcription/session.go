package transcription

import (
	"fmt"
	"log"
	"math"
	"strings"

	"jarvis-voice-assistant/audio_source"
	"jarvis-voice-assistant/config"
	"jarvis-voice-assistant/speech_to_text"
)

const (
	DefaultChunkSize = 512

	// Absolute safety cap on session length, to guard against a recognizer
	// that never reports silence.
	maxSeconds = 6
)

type sessionImpl struct {
	engine speech_to_text.Interface

	chunkSize       int
	rmsThreshold    float64
	silenceChunkEnd int
	maxChunks       int
}

type Config struct {
	// Engine may be nil when the recognizer failed to initialize; Run then
	// returns an empty transcript immediately.
	Engine speech_to_text.Interface

	// Tuning is the endpointing snapshot for this session. It is captured at
	// creation time and never re-read.
	Tuning config.Tuning

	ChunkSize  int
	SampleRate int
}

// New creates a session for a single wake cycle. Create a fresh one per cycle
// so tuning changes take effect on the next session, never a running one.
func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = audio_source.SampleRate
	}

	silenceChunkEnd := int(math.Round(cfg.Tuning.SilenceDuration.Seconds() * float64(sampleRate) / float64(chunkSize)))
	if silenceChunkEnd < 1 {
		silenceChunkEnd = 1
	}

	return &sessionImpl{
		engine:          cfg.Engine,
		chunkSize:       chunkSize,
		rmsThreshold:    float64(cfg.Tuning.RMSThreshold),
		silenceChunkEnd: silenceChunkEnd,
		maxChunks:       maxSeconds * sampleRate / chunkSize,
	}, nil
}

func (s *sessionImpl) Run(src audio_source.Interface, preroll [][]int16, onPartial func(string)) (string, error) {
	if s.engine == nil {
		return "", speech_to_text.ErrRecognizerUnavailable
	}

	if err := s.engine.Reset(); err != nil {
		return "", fmt.Errorf("resetting recognizer: %w", err)
	}

	// Prime with the pre-roll so speech right after the wake word is not
	// lost. No endpointing checks run until live frames arrive.
	for _, frame := range preroll {
		if err := s.engine.Accept(frame); err != nil {
			return "", fmt.Errorf("accepting pre-roll frame: %w", err)
		}
	}

	var (
		silentChunks int
		totalChunks  int
		lastPartial  string
	)

	for {
		frame, err := src.ReadFrame(s.chunkSize)
		if err != nil {
			return "", fmt.Errorf("reading audio frame: %w", err)
		}

		if err := s.engine.Accept(frame); err != nil {
			return "", fmt.Errorf("accepting audio frame: %w", err)
		}

		totalChunks++

		if partial := strings.TrimSpace(s.engine.Partial()); partial != "" && partial != lastPartial {
			if onPartial != nil {
				onPartial(partial)
			}

			lastPartial = partial
		}

		if rms(frame) < s.rmsThreshold {
			silentChunks++

			if silentChunks >= s.silenceChunkEnd {
				break
			}
		} else {
			silentChunks = 0
		}

		if totalChunks >= s.maxChunks {
			log.Printf("maximum recording duration reached, stopping transcription")

			break
		}
	}

	final, err := s.engine.Final()
	if err != nil {
		return "", fmt.Errorf("finalizing transcript: %w", err)
	}

	final = strings.TrimSpace(final)

	// Finalization can revise earlier words, so the caller sees the final
	// text even when a partial already covered the same audio.
	if final != "" && final != lastPartial && onPartial != nil {
		onPartial(final)
	}

	return final, nil
}

// rms computes sqrt(mean(sample²)) with samples upcast to avoid overflow.
func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64

	for _, s := range samples {
		f := float64(s)
		sum += f * f
	}

	return math.Sqrt(sum / float64(len(samples)))
}
