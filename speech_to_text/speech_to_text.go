package speech_to_text

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

const (
	// Whisper re-runs inference over the whole session buffer to produce
	// partials; throttle that to once every this many accepted frames.
	defaultPartialEveryChunks = 16

	// Whisper rejects inputs shorter than one second, so short sessions are
	// zero-padded up to this many samples before processing.
	minProcessSamples = 16000
)

type sttImpl struct {
	model whisper.Model

	buffer       []float32
	partial      string
	sincePartial int
	partialEvery int
}

type Config struct {
	Model whisper.Model

	// PartialEveryChunks overrides how often Partial re-runs inference.
	PartialEveryChunks int
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Model == nil {
		return nil, fmt.Errorf("model is nil")
	}

	partialEvery := cfg.PartialEveryChunks
	if partialEvery <= 0 {
		partialEvery = defaultPartialEveryChunks
	}

	return &sttImpl{
		model:        cfg.Model,
		partialEvery: partialEvery,
	}, nil
}

func (stt *sttImpl) Reset() error {
	stt.buffer = stt.buffer[:0]
	stt.partial = ""
	stt.sincePartialReset()

	return nil
}

func (stt *sttImpl) sincePartialReset() {
	stt.sincePartial = 0
}

func (stt *sttImpl) Accept(samples []int16) error {
	for _, s := range samples {
		stt.buffer = append(stt.buffer, float32(s)/32768.0)
	}

	stt.sincePartial++

	if stt.sincePartial >= stt.partialEvery {
		stt.sincePartialReset()

		text, err := stt.process()
		if err != nil {
			log.Printf("error computing partial transcript: %v", err)

			return nil
		}

		stt.partial = text
	}

	return nil
}

func (stt *sttImpl) Partial() string {
	return stt.partial
}

func (stt *sttImpl) Final() (string, error) {
	return stt.process()
}

func (stt *sttImpl) process() (string, error) {
	if len(stt.buffer) == 0 {
		return "", nil
	}

	// Create processing context
	context, err := stt.model.NewContext()
	if err != nil {
		return "", err
	}

	data := stt.buffer
	if len(data) < minProcessSamples {
		data = append(data[:len(data):len(data)], make([]float32, minProcessSamples-len(data))...)
	}

	var cb whisper.SegmentCallback

	if err := context.Process(data, cb); err != nil {
		return "", err
	}

	segments, err := outputSegments(context)
	if err != nil {
		return "", err
	}

	return joinSegments(segments), nil
}

func outputSegments(context whisper.Context) ([]whisper.Segment, error) {
	seenText := make(map[string]bool)

	segments := make([]whisper.Segment, 0)

	for {
		segment, err := context.NextSegment()
		if err == io.EOF {
			return segments, nil
		} else if err != nil {
			return nil, err
		}

		// if segment text starts or ends with a parenthesis or a bracket, then ignore it
		if len(segment.Text) > 0 && (segment.Text[0] == '(' || segment.Text[0] == '[' ||
			segment.Text[len(segment.Text)-1] == ')' || segment.Text[len(segment.Text)-1] == ']') {
			continue
		}

		// if we've already seen this text, then ignore it
		if _, ok := seenText[segment.Text]; ok {
			continue
		} else {
			seenText[segment.Text] = true
		}

		segments = append(segments, segment)
	}
}

func joinSegments(segments []whisper.Segment) string {
	parts := make([]string, 0, len(segments))

	for _, segment := range segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
