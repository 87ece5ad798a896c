package speech_output

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

const defaultQueueSize = 16

type speechImpl struct {
	synthesizer Synthesizer
	player      Player
	enabled     bool

	queue chan string
	done  chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

type Config struct {
	Synthesizer Synthesizer
	Player      Player

	// Enabled gates both enqueue and render. When false, Speak is a no-op and
	// the renderer is never touched, so Synthesizer and Player may be nil.
	Enabled bool

	QueueSize int
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if !cfg.Enabled {
		return &speechImpl{}, nil
	}

	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is nil")
	}

	if cfg.Player == nil {
		return nil, fmt.Errorf("player is nil")
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	s := &speechImpl{
		synthesizer: cfg.Synthesizer,
		player:      cfg.Player,
		enabled:     true,
		queue:       make(chan string, queueSize),
		done:        make(chan struct{}),
	}

	go s.worker()

	return s, nil
}

func (s *speechImpl) Speak(text string) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.queue <- text:
	default:
		log.Printf("speech queue full, dropping utterance: %q", text)
	}
}

func (s *speechImpl) Stop() {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}

func (s *speechImpl) Shutdown() {
	if !s.enabled {
		return
	}

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	s.closed = true
	close(s.queue)

	s.mu.Unlock()

	<-s.done
}

// worker renders queued utterances strictly in FIFO order, one at a time.
// The closed queue channel is the shutdown sentinel.
func (s *speechImpl) worker() {
	defer close(s.done)

	for text := range s.queue {
		s.render(text)
	}
}

func (s *speechImpl) render(text string) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()

		cancel()
	}()

	samples, sampleRate, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("error synthesizing speech: %v", err)
		}

		return
	}

	if err := s.player.Play(ctx, samples, sampleRate); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("error playing speech: %v", err)
	}
}
