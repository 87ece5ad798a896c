package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jarvis-voice-assistant/audio_source"
	"jarvis-voice-assistant/clients/music_bot"
	"jarvis-voice-assistant/config"
	"jarvis-voice-assistant/interpreter"
	"jarvis-voice-assistant/speech_output"
	"jarvis-voice-assistant/speech_to_text"
	"jarvis-voice-assistant/transcription"
	"jarvis-voice-assistant/wake_word"
)

type assistantImpl struct {
	source    audio_source.Interface
	detector  wake_word.Interface
	sttEngine speech_to_text.Interface
	speech    speech_output.Interface

	// musicBotClient is nil when no bot URL is configured; commands are then
	// acknowledged but dropped with a log line.
	musicBotClient music_bot.MusicBotAPI

	// tuning is owned by the orchestrator and read once per session creation.
	tuning *config.Tuning

	state State
}

type Config struct {
	Source    audio_source.Interface
	Detector  wake_word.Interface
	STTEngine speech_to_text.Interface
	Speech    speech_output.Interface
	MusicBot  music_bot.MusicBotAPI
	Tuning    *config.Tuning
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Source == nil {
		return nil, fmt.Errorf("source is nil")
	}

	if cfg.Detector == nil {
		return nil, fmt.Errorf("detector is nil")
	}

	if cfg.Speech == nil {
		return nil, fmt.Errorf("speech is nil")
	}

	if cfg.Tuning == nil {
		return nil, fmt.Errorf("tuning is nil")
	}

	return &assistantImpl{
		source:         cfg.Source,
		detector:       cfg.Detector,
		sttEngine:      cfg.STTEngine,
		speech:         cfg.Speech,
		musicBotClient: cfg.MusicBot,
		tuning:         cfg.Tuning,
		state:          StateIdle,
	}, nil
}

func (a *assistantImpl) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.state = StateIdle
		fmt.Println(`Say "Jarvis" to wake...`)

		a.state = StateListening

		preroll, err := a.detector.Listen(a.source)
		if err != nil {
			if errors.Is(err, wake_word.ErrDetectorUnavailable) {
				log.Printf("warning: no pre-buffered audio available, proceeding without it")
			} else {
				return fmt.Errorf("listening for wake word: %w", err)
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		a.state = StateAcknowledging
		a.speech.Stop()
		fmt.Println("Wake word detected.")
		a.speech.Speak("Yes?")

		a.state = StateTranscribing

		transcript := a.transcribe(preroll)

		a.state = StateInterpreting

		cmd, ok := interpreter.Interpret(transcript)
		if !ok {
			continue
		}

		if cmd.Kind == interpreter.KindCancel {
			fmt.Println("Aborting current command.")
			a.speech.Speak(cmd.Acknowledgement())

			continue
		}

		fmt.Printf("You said: %q\n", interpreter.StripWakeWord(transcript))

		a.state = StateActing

		if ack := cmd.Acknowledgement(); ack != "" {
			fmt.Printf("Jarvis: %q\n", ack)
			a.speech.Speak(ack)
		}

		if cmd.Kind == interpreter.KindTerminate {
			a.state = StateTerminated

			return nil
		}

		a.dispatch(ctx, cmd)
	}
}

// transcribe runs one endpointed session with a fresh tuning snapshot,
// degrading to an empty transcript on any recognizer failure.
func (a *assistantImpl) transcribe(preroll [][]int16) string {
	session, err := transcription.New(&transcription.Config{
		Engine: a.sttEngine,
		Tuning: *a.tuning,
	})
	if err != nil {
		log.Printf("error creating transcription session: %v", err)

		return ""
	}

	transcript, err := session.Run(a.source, preroll, func(partial string) {
		// overwrite the current line with the growing sentence
		fmt.Printf("\r%s%s", partial, strings.Repeat(" ", 20))
	})

	fmt.Println()

	if err != nil {
		if errors.Is(err, speech_to_text.ErrRecognizerUnavailable) {
			log.Printf("speech recognizer unavailable, cannot transcribe")
		} else {
			log.Printf("error transcribing: %v", err)
		}

		return ""
	}

	return transcript
}

func (a *assistantImpl) dispatch(ctx context.Context, cmd interpreter.Command) {
	if !cmd.Dispatchable() {
		return
	}

	if a.musicBotClient == nil {
		log.Printf("music bot URL not configured, dropping %s command", cmd.Kind)

		return
	}

	if _, err := a.musicBotClient.Dispatch(ctx, cmd); err != nil {
		log.Printf("error dispatching %s command: %v", cmd.Kind, err)
	}
}
