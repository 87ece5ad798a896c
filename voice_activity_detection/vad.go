package voice_activity_detection

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// VAD measures spectral flux between consecutive audio frames. A sharp rise
// in flux marks the onset of speech, a sustained drop marks its end.
type VAD struct {
	sampleSize   int
	lastSpectrum []float64
}

func New(sampleSize int) *VAD {
	return &VAD{
		sampleSize: sampleSize,
	}
}

// Flux returns the spectral flux of the frame relative to the previous one.
// The first frame establishes the baseline and returns 0.
func (v *VAD) Flux(samples []int16) float64 {
	input := make([]float64, len(samples))
	for i, s := range samples {
		input[i] = float64(s) / 32768.0
	}

	spectrum := fft.FFTReal(input)

	magnitudes := make([]float64, len(spectrum)/2)
	for i := range magnitudes {
		magnitudes[i] = cmplx.Abs(spectrum[i])
	}

	if v.lastSpectrum == nil {
		v.lastSpectrum = magnitudes

		return 0
	}

	var flux float64

	for i, m := range magnitudes {
		d := m - v.lastSpectrum[i]
		flux += d * d
	}

	v.lastSpectrum = magnitudes

	return math.Sqrt(flux)
}

// Reset clears the spectral history so a new audio segment starts fresh.
func (v *VAD) Reset() {
	v.lastSpectrum = nil
}
