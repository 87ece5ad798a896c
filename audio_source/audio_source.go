package audio_source

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate is fixed for the lifetime of the process. The wake classifier,
	// the recognizer, and the endpointing math all assume it.
	SampleRate = 16000

	defaultCaptureBlock = 512
)

type sourceImpl struct {
	stream *portaudio.Stream
	in     []int16
	offset int
	closed bool
}

type Config struct {
	// CaptureBlock is the number of samples read from the device per
	// stream read. Defaults to 512.
	CaptureBlock int
}

func New(cfg *Config) (Interface, error) {
	block := defaultCaptureBlock
	if cfg != nil && cfg.CaptureBlock > 0 {
		block = cfg.CaptureBlock
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	in := make([]int16, block)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(in), in)
	if err != nil {
		freePortaudio()
		return nil, fmt.Errorf("opening input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		freePortaudio()
		return nil, fmt.Errorf("starting input stream: %w", err)
	}

	return &sourceImpl{
		stream: stream,
		in:     in,
		offset: len(in),
	}, nil
}

func (s *sourceImpl) ReadFrame(n int) ([]int16, error) {
	if s.closed {
		return nil, fmt.Errorf("audio source is closed")
	}

	frame := make([]int16, 0, n)

	for len(frame) < n {
		if s.offset == len(s.in) {
			if err := s.stream.Read(); err != nil {
				return nil, fmt.Errorf("reading audio stream: %w", err)
			}

			s.offset = 0
		}

		take := n - len(frame)
		if take > len(s.in)-s.offset {
			take = len(s.in) - s.offset
		}

		frame = append(frame, s.in[s.offset:s.offset+take]...)
		s.offset += take
	}

	return frame, nil
}

// Close stops capture, closes the stream, and releases the audio device.
// Safe to call more than once.
func (s *sourceImpl) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.stream.Stop(); err != nil {
		log.Printf("error stopping audio stream: %v", err)
	}

	err := s.stream.Close()

	freePortaudio()

	return err
}

func freePortaudio() {
	if err := portaudio.Terminate(); err != nil {
		log.Printf("error while freeing audio: %v", err)
	}
}
