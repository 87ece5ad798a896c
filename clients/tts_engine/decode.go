package tts_engine

import (
	"bytes"
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeWave parses a wav response body into mono PCM16 samples.
func decodeWave(body []byte) ([]int16, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(body))

	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("tts server returned an invalid wav file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding tts response: %w", err)
	}

	if buf.Format.NumChannels != 1 {
		return nil, 0, fmt.Errorf("expected mono tts output, got %d channels", buf.Format.NumChannels)
	}

	return pcm16(buf), buf.Format.SampleRate, nil
}

// pcm16 narrows a decoded buffer back down to the int16 samples the rest of
// the pipeline works in.
func pcm16(buf *audio.IntBuffer) []int16 {
	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	return samples
}
