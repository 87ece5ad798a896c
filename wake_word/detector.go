package wake_word

import (
	"fmt"
	"log"
	"math"

	"jarvis-voice-assistant/audio_source"
	"jarvis-voice-assistant/ring_buffer"
)

type detectorImpl struct {
	classifier Classifier
	ring       *ring_buffer.Buffer
	warned     bool
}

type Config struct {
	// Classifier may be nil when initialization failed upstream; Listen then
	// degrades to an empty pre-roll instead of crashing.
	Classifier Classifier

	// BufferSeconds is the pre-roll window captured before detection.
	BufferSeconds float64

	SampleRate int
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.BufferSeconds <= 0 {
		return nil, fmt.Errorf("buffer seconds must be positive")
	}

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive")
	}

	d := &detectorImpl{
		classifier: cfg.Classifier,
	}

	if cfg.Classifier != nil {
		capacity := int(math.Ceil(cfg.BufferSeconds * float64(cfg.SampleRate) / float64(cfg.Classifier.FrameLength())))
		d.ring = ring_buffer.New(capacity)
	}

	return d, nil
}

func (d *detectorImpl) Listen(src audio_source.Interface) ([][]int16, error) {
	if d.classifier == nil {
		if !d.warned {
			log.Printf("wake word classifier not initialized, cannot listen for wake word")

			d.warned = true
		}

		return nil, ErrDetectorUnavailable
	}

	frameLength := d.classifier.FrameLength()

	for {
		frame, err := src.ReadFrame(frameLength)
		if err != nil {
			return nil, fmt.Errorf("reading audio frame: %w", err)
		}

		d.ring.Add(frame)

		index, err := d.classifier.Process(frame)
		if err != nil {
			return nil, fmt.Errorf("classifying audio frame: %w", err)
		}

		if index >= 0 {
			preroll := d.ring.Frames()
			d.ring.Clear()

			return preroll, nil
		}
	}
}
