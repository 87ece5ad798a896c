package speech_output

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"

	"github.com/go-audio/wav"
	"github.com/spf13/afero"
	"github.com/zenwerk/go-wave"
)

// cachingSynthesizer stores rendered utterances as wav files on an afero
// filesystem so repeated acknowledgements ("Yes?", "Cancelled.") are
// synthesized once. With the default MemMapFs nothing ever touches disk.
// Cache failures are logged and fall through to the wrapped synthesizer.
type cachingSynthesizer struct {
	fileSys afero.Fs
	next    Synthesizer
}

type CacheConfig struct {
	// FileSys defaults to an in-memory filesystem.
	FileSys afero.Fs

	Synthesizer Synthesizer
}

func NewCachingSynthesizer(cfg *CacheConfig) (Synthesizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is nil")
	}

	fileSys := cfg.FileSys
	if fileSys == nil {
		fileSys = afero.NewMemMapFs()
	}

	return &cachingSynthesizer{
		fileSys: fileSys,
		next:    cfg.Synthesizer,
	}, nil
}

func (c *cachingSynthesizer) Synthesize(ctx context.Context, text string) ([]int16, int, error) {
	waveFilename := cacheFilename(text)

	if samples, sampleRate, ok := c.lookup(waveFilename); ok {
		return samples, sampleRate, nil
	}

	samples, sampleRate, err := c.next.Synthesize(ctx, text)
	if err != nil {
		return nil, 0, err
	}

	c.store(waveFilename, samples, sampleRate)

	return samples, sampleRate, nil
}

func (c *cachingSynthesizer) lookup(waveFilename string) ([]int16, int, bool) {
	exists, err := afero.Exists(c.fileSys, waveFilename)
	if err != nil || !exists {
		return nil, 0, false
	}

	waveFile, err := c.fileSys.Open(waveFilename)
	if err != nil {
		log.Printf("error opening cached speech %s: %v", waveFilename, err)

		return nil, 0, false
	}

	defer waveFile.Close()

	decoder := wav.NewDecoder(waveFile)

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		log.Printf("error decoding cached speech %s: %v", waveFilename, err)

		return nil, 0, false
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}

	return samples, buf.Format.SampleRate, true
}

func (c *cachingSynthesizer) store(waveFilename string, samples []int16, sampleRate int) {
	waveFile, err := c.fileSys.Create(waveFilename)
	if err != nil {
		log.Printf("error creating speech cache file %s: %v", waveFilename, err)

		return
	}

	param := wave.WriterParam{
		Out:           waveFile,
		Channel:       1,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
	}

	waveWriter, err := wave.NewWriter(param)
	if err != nil {
		log.Printf("error writing speech cache file %s: %v", waveFilename, err)
		waveFile.Close()

		return
	}

	if _, err := waveWriter.WriteSample16(samples); err != nil {
		log.Printf("error writing speech cache file %s: %v", waveFilename, err)
	}

	if err := waveWriter.Close(); err != nil {
		log.Printf("error closing speech cache file %s: %v", waveFilename, err)
	}
}

func cacheFilename(text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))

	return fmt.Sprintf("speech-%x.wav", h.Sum64())
}
