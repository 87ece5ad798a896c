package voice_activity_detection

import (
	"math"
	"testing"
)

func sineFrame(freq float64, amplitude float64, size int) []int16 {
	frame := make([]int16, size)
	for i := range frame {
		frame[i] = int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/16000.0))
	}

	return frame
}

func TestVAD_Flux(t *testing.T) {
	t.Run("first frame establishes the baseline and returns zero", func(t *testing.T) {
		vad := New(512)

		if flux := vad.Flux(sineFrame(440, 8000, 512)); flux != 0 {
			t.Errorf("expected 0 flux for first frame, got %f", flux)
		}
	})

	t.Run("identical consecutive frames produce near-zero flux", func(t *testing.T) {
		vad := New(512)

		frame := sineFrame(440, 8000, 512)
		vad.Flux(frame)

		if flux := vad.Flux(frame); flux > 1e-9 {
			t.Errorf("expected near-zero flux for identical frames, got %f", flux)
		}
	})

	t.Run("a loud onset after silence yields a larger flux than steady silence", func(t *testing.T) {
		vad := New(512)

		silence := make([]int16, 512)
		vad.Flux(silence)
		quietFlux := vad.Flux(silence)

		loudFlux := vad.Flux(sineFrame(440, 8000, 512))

		if loudFlux <= quietFlux {
			t.Errorf("expected onset flux %f to exceed silence flux %f", loudFlux, quietFlux)
		}
	})

	t.Run("reset clears the spectral history", func(t *testing.T) {
		vad := New(512)

		vad.Flux(sineFrame(440, 8000, 512))
		vad.Reset()

		if flux := vad.Flux(sineFrame(880, 8000, 512)); flux != 0 {
			t.Errorf("expected 0 flux after reset, got %f", flux)
		}
	})
}
