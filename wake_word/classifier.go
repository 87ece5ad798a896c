package wake_word

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"

	"jarvis-voice-assistant/speech_to_text"
	"jarvis-voice-assistant/voice_activity_detection"
)

const (
	defaultFrameLength = 512
	defaultPhrase      = "jarvis"

	// How much audio the classifier keeps around for phrase matching.
	windowSeconds = 1.5

	// How long the flux must stay low before a speech burst is considered
	// finished and worth transcribing.
	quietSeconds = 0.25

	// Minimum Jaro-Winkler similarity accepted when the metaphone codes of a
	// token do not match the wake phrase exactly.
	fuzzyThreshold = 0.84
)

// phraseClassifier is the default wake-phrase engine: cheap spectral-flux
// tracking decides when a speech burst has ended, and only then is the burst
// transcribed and its tokens phonetically compared against the wake phrase.
type phraseClassifier struct {
	engine speech_to_text.Interface
	vad    *voice_activity_detection.VAD

	phrase          string
	phrasePrimary   string
	phraseSecondary string

	frameLength  int
	windowFrames int
	quietNeeded  int

	window         [][]int16
	heardSomething bool
	quietFrames    int
	lastFlux       float64
}

type PhraseClassifierConfig struct {
	// Engine transcribes candidate bursts. It must be dedicated to the
	// classifier: its sessions are reset on every burst.
	Engine speech_to_text.Interface

	// Phrase is the wake phrase to spot. Defaults to "jarvis".
	Phrase string

	FrameLength int
	SampleRate  int
}

func NewPhraseClassifier(cfg *PhraseClassifierConfig) (Classifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Engine == nil {
		return nil, fmt.Errorf("engine is nil")
	}

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive")
	}

	frameLength := cfg.FrameLength
	if frameLength <= 0 {
		frameLength = defaultFrameLength
	}

	phrase := strings.ToLower(strings.TrimSpace(cfg.Phrase))
	if phrase == "" {
		phrase = defaultPhrase
	}

	primary, secondary := matchr.DoubleMetaphone(phrase)

	windowFrames := int(windowSeconds * float64(cfg.SampleRate) / float64(frameLength))

	quietNeeded := int(quietSeconds * float64(cfg.SampleRate) / float64(frameLength))
	if quietNeeded < 1 {
		quietNeeded = 1
	}

	return &phraseClassifier{
		engine:          cfg.Engine,
		vad:             voice_activity_detection.New(frameLength),
		phrase:          phrase,
		phrasePrimary:   primary,
		phraseSecondary: secondary,
		frameLength:     frameLength,
		windowFrames:    windowFrames,
		quietNeeded:     quietNeeded,
	}, nil
}

func (c *phraseClassifier) FrameLength() int {
	return c.frameLength
}

func (c *phraseClassifier) Process(samples []int16) (int, error) {
	frame := make([]int16, len(samples))
	copy(frame, samples)

	c.window = append(c.window, frame)
	if len(c.window) > c.windowFrames {
		c.window = c.window[1:]
	}

	flux := c.vad.Flux(samples)

	if c.lastFlux == 0 {
		c.lastFlux = flux

		return -1, nil
	}

	if c.heardSomething {
		if flux*1.75 <= c.lastFlux {
			c.quietFrames++

			if c.quietFrames >= c.quietNeeded {
				matched, err := c.matchWindow()

				c.resetBurst()

				if err != nil {
					return -1, err
				}

				if matched {
					return 0, nil
				}
			}
		} else {
			c.quietFrames = 0
			c.lastFlux = flux
		}
	} else {
		if flux >= c.lastFlux*1.75 {
			c.heardSomething = true
		}

		c.lastFlux = flux
	}

	return -1, nil
}

func (c *phraseClassifier) Close() error {
	return nil
}

func (c *phraseClassifier) resetBurst() {
	c.heardSomething = false
	c.quietFrames = 0
	c.lastFlux = 0
	c.window = c.window[:0]
	c.vad.Reset()
}

func (c *phraseClassifier) matchWindow() (bool, error) {
	if err := c.engine.Reset(); err != nil {
		return false, err
	}

	for _, frame := range c.window {
		if err := c.engine.Accept(frame); err != nil {
			return false, err
		}
	}

	text, err := c.engine.Final()
	if err != nil {
		return false, err
	}

	for _, token := range tokenize(text) {
		if c.matchesPhrase(token) {
			return true, nil
		}
	}

	return false, nil
}

func (c *phraseClassifier) matchesPhrase(token string) bool {
	primary, secondary := matchr.DoubleMetaphone(token)

	if primary != "" && (primary == c.phrasePrimary || primary == c.phraseSecondary) {
		return true
	}

	if secondary != "" && (secondary == c.phrasePrimary || secondary == c.phraseSecondary) {
		return true
	}

	return matchr.JaroWinkler(token, c.phrase, false) >= fuzzyThreshold
}

// tokenize keeps only alphanumeric characters and spaces to avoid false
// negatives when the recognizer adds punctuation around the wake phrase.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == ' ' {
			return r
		}

		return -1
	}, text)

	return strings.Fields(strings.ToLower(cleaned))
}
