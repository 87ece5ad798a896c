package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"jarvis-voice-assistant/assistant"
	"jarvis-voice-assistant/audio_source"
	"jarvis-voice-assistant/clients/music_bot"
	"jarvis-voice-assistant/clients/tts_engine"
	"jarvis-voice-assistant/config"
	"jarvis-voice-assistant/speech_output"
	"jarvis-voice-assistant/speech_to_text"
	"jarvis-voice-assistant/wake_word"
)

// ttsSampleRate is the output rate of the Coqui TTS server.
const ttsSampleRate = 22050

func main() {
	os.Exit(run())
}

func run() int {
	modelFlag := flag.String("m", "", "model file for whisper")

	flag.Parse()

	cfg := config.Load()

	if *modelFlag != "" {
		cfg.WhisperModelPath = *modelFlag
	}

	cfg.PromptTuning(os.Stdin, os.Stdout)

	fmt.Printf("Silence detection: RMS threshold %d, duration %.1fs\n",
		cfg.Tuning.RMSThreshold, cfg.Tuning.SilenceDuration.Seconds())

	model := loadWhisperModel(cfg.WhisperModelPath)
	if model != nil {
		defer model.Close()
	}

	speech, err := newSpeechOutput(cfg)
	if err != nil {
		log.Printf("error with speech_output.New: %v", err)

		return 1
	}

	defer speech.Shutdown()

	source, err := audio_source.New(nil)
	if err != nil {
		log.Printf("error opening audio source: %v", err)

		return 1
	}

	defer func() {
		if err := source.Close(); err != nil {
			log.Printf("error closing audio source: %v", err)
		}
	}()

	detector, err := wake_word.New(&wake_word.Config{
		Classifier:    newClassifier(model),
		BufferSeconds: cfg.BufferSeconds,
		SampleRate:    audio_source.SampleRate,
	})
	if err != nil {
		log.Printf("error with wake_word.New: %v", err)

		return 1
	}

	var sttEngine speech_to_text.Interface
	if model != nil {
		sttEngine, err = speech_to_text.New(&speech_to_text.Config{
			Model: model,
		})
		if err != nil {
			log.Printf("error with speech_to_text.New: %v", err)

			return 1
		}
	}

	a, err := assistant.New(&assistant.Config{
		Source:    source,
		Detector:  detector,
		STTEngine: sttEngine,
		Speech:    speech,
		MusicBot:  newMusicBot(cfg),
		Tuning:    &cfg.Tuning,
	})
	if err != nil {
		log.Printf("error with assistant.New: %v", err)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Printf("error: %v", err)

		return 1
	}

	return 0
}

// loadWhisperModel returns nil when no model can be loaded; the assistant then
// runs in a degraded mode without wake-word spotting or transcription.
func loadWhisperModel(path string) whisper.Model {
	if path == "" {
		log.Printf("no whisper model configured, transcription disabled")

		return nil
	}

	model, err := whisper.New(path)
	if err != nil {
		log.Printf("error loading model %q: %v, transcription disabled", path, err)

		return nil
	}

	return model
}

// newClassifier builds the wake-word classifier on its own recognizer
// session, separate from the one used for command transcription.
func newClassifier(model whisper.Model) wake_word.Classifier {
	if model == nil {
		return nil
	}

	engine, err := speech_to_text.New(&speech_to_text.Config{
		Model: model,
	})
	if err != nil {
		log.Printf("error with speech_to_text.New for the classifier: %v", err)

		return nil
	}

	classifier, err := wake_word.NewPhraseClassifier(&wake_word.PhraseClassifierConfig{
		Engine:     engine,
		SampleRate: audio_source.SampleRate,
	})
	if err != nil {
		log.Printf("error with wake_word.NewPhraseClassifier: %v", err)

		return nil
	}

	return classifier
}

func newSpeechOutput(cfg *config.Config) (speech_output.Interface, error) {
	if !cfg.SpeechEnabled || cfg.TTSBaseURL == "" {
		if cfg.SpeechEnabled {
			log.Printf("no TTS server configured, spoken responses disabled")
		}

		return speech_output.New(&speech_output.Config{})
	}

	ttsClient, err := tts_engine.NewClient(&tts_engine.Config{
		ApiHost: cfg.TTSBaseURL,
		Voice:   cfg.TTSVoice,
	})
	if err != nil {
		return nil, err
	}

	synthesizer, err := speech_output.NewCachingSynthesizer(&speech_output.CacheConfig{
		Synthesizer: ttsClient,
	})
	if err != nil {
		return nil, err
	}

	player, err := speech_output.NewPlayer(&speech_output.PlayerConfig{
		SampleRate: ttsSampleRate,
	})
	if err != nil {
		log.Printf("error opening the audio output device: %v, spoken responses disabled", err)

		return speech_output.New(&speech_output.Config{})
	}

	return speech_output.New(&speech_output.Config{
		Synthesizer: synthesizer,
		Player:      player,
		Enabled:     true,
	})
}

func newMusicBot(cfg *config.Config) music_bot.MusicBotAPI {
	if cfg.MusicBotURL == "" {
		log.Printf("no music bot URL configured, commands will not be dispatched")

		return nil
	}

	client, err := music_bot.NewClient(&music_bot.Config{
		ApiHost:        cfg.MusicBotURL,
		GuildID:        cfg.GuildID,
		UserID:         cfg.UserID,
		VoiceChannelID: cfg.VoiceChannelID,
	})
	if err != nil {
		log.Printf("error with music_bot.NewClient: %v", err)

		return nil
	}

	return client
}
