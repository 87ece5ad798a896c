package speech_output

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

type otoPlayer struct {
	ctx        *oto.Context
	sampleRate int
}

type PlayerConfig struct {
	// SampleRate is the fixed output rate of the audio device context.
	// Synthesized audio at another rate is rejected rather than resampled.
	SampleRate int
}

func NewPlayer(cfg *PlayerConfig) (Player, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive")
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio output context: %w", err)
	}

	<-readyChan

	return &otoPlayer{
		ctx:        otoCtx,
		sampleRate: cfg.SampleRate,
	}, nil
}

func (p *otoPlayer) Play(ctx context.Context, samples []int16, sampleRate int) error {
	if sampleRate != p.sampleRate {
		return fmt.Errorf("expected sample rate %d, got %d", p.sampleRate, sampleRate)
	}

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		pcm[i*2] = byte(s)
		pcm[i*2+1] = byte(s >> 8)
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()

	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return nil
}
