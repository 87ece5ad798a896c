package config

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultRMSThreshold    = 900
	DefaultSilenceDuration = 1500 * time.Millisecond
	DefaultBufferSeconds   = 1.0
)

// Tuning holds the silence-endpointing parameters. The orchestrator owns the
// value; each transcription session captures a snapshot at creation time.
type Tuning struct {
	RMSThreshold    int
	SilenceDuration time.Duration
}

type Config struct {
	GuildID        string
	UserID         string
	VoiceChannelID string
	MusicBotURL    string

	WhisperModelPath string

	TTSBaseURL    string
	TTSVoice      string
	SpeechEnabled bool

	BufferSeconds float64
	Tuning        Tuning
}

// Load reads configuration from a .env file (if present) and the environment.
// A missing music bot URL is a warning, not an error; dispatch is simply
// unavailable in that case.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("error loading .env file: %v", err)
	}

	cfg := &Config{
		GuildID:          os.Getenv("GUILD_ID"),
		UserID:           os.Getenv("USER_ID"),
		VoiceChannelID:   os.Getenv("VOICE_CHANNEL_ID"),
		MusicBotURL:      os.Getenv("MUSIC_BOT_URL"),
		WhisperModelPath: os.Getenv("WHISPER_MODEL"),
		TTSBaseURL:       os.Getenv("TTS_URL"),
		TTSVoice:         os.Getenv("TTS_VOICE"),
		SpeechEnabled:    true,
		BufferSeconds:    DefaultBufferSeconds,
		Tuning: Tuning{
			RMSThreshold:    DefaultRMSThreshold,
			SilenceDuration: DefaultSilenceDuration,
		},
	}

	if cfg.MusicBotURL != "" && !strings.HasSuffix(cfg.MusicBotURL, "/") {
		cfg.MusicBotURL += "/"
	}

	if v := os.Getenv("SPEECH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid SPEECH_ENABLED %q, keeping default: %v", v, err)
		} else {
			cfg.SpeechEnabled = enabled
		}
	}

	if v := os.Getenv("RMS_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid RMS_THRESHOLD %q, using default %d", v, DefaultRMSThreshold)
		} else {
			cfg.Tuning.RMSThreshold = threshold
		}
	}

	if v := os.Getenv("SILENCE_DURATION_SECONDS"); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid SILENCE_DURATION_SECONDS %q, using default %.1fs",
				v, DefaultSilenceDuration.Seconds())
		} else {
			cfg.Tuning.SilenceDuration = time.Duration(seconds * float64(time.Second))
		}
	}

	if v := os.Getenv("BUFFER_SECONDS"); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid BUFFER_SECONDS %q, using default %.1f", v, DefaultBufferSeconds)
		} else {
			cfg.BufferSeconds = seconds
		}
	}

	return cfg
}

// PromptTuning lets the user override the silence-detection parameters before
// the main loop starts. Empty input keeps the current value; non-numeric input
// is rejected with a warning and the prior value is retained (no re-prompt).
func (c *Config) PromptTuning(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)

	fmt.Fprintf(w, "RMS silence threshold [%d]: ", c.Tuning.RMSThreshold)
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			threshold, err := strconv.Atoi(input)
			if err != nil {
				fmt.Fprintf(w, "invalid threshold %q, keeping %d\n", input, c.Tuning.RMSThreshold)
			} else {
				c.Tuning.RMSThreshold = threshold
			}
		}
	}

	fmt.Fprintf(w, "Silence duration in seconds [%.1f]: ", c.Tuning.SilenceDuration.Seconds())
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			seconds, err := strconv.ParseFloat(input, 64)
			if err != nil {
				fmt.Fprintf(w, "invalid duration %q, keeping %.1fs\n", input, c.Tuning.SilenceDuration.Seconds())
			} else {
				c.Tuning.SilenceDuration = time.Duration(seconds * float64(time.Second))
			}
		}
	}
}
