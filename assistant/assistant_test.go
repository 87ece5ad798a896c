package assistant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jarvis-voice-assistant/audio_source"
	"jarvis-voice-assistant/clients/music_bot"
	"jarvis-voice-assistant/config"
	"jarvis-voice-assistant/interpreter"
	"jarvis-voice-assistant/wake_word"
)

// fakeSource serves endless silent frames, so every transcription session
// ends via the silence endpoint.
type fakeSource struct{}

func (f *fakeSource) ReadFrame(n int) ([]int16, error) {
	return make([]int16, n), nil
}

func (f *fakeSource) Close() error {
	return nil
}

type fakeDetector struct {
	wakes int
	calls int
	err   error
}

func (f *fakeDetector) Listen(_ audio_source.Interface) ([][]int16, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	if f.calls > f.wakes {
		return nil, fmt.Errorf("detector script exhausted after %d wakes", f.wakes)
	}

	return [][]int16{make([]int16, 512)}, nil
}

// fakeEngine returns one scripted final transcript per session.
type fakeEngine struct {
	finals []string
	resets int
}

func (f *fakeEngine) Reset() error {
	f.resets++

	return nil
}

func (f *fakeEngine) Accept(_ []int16) error {
	return nil
}

func (f *fakeEngine) Partial() string {
	return ""
}

func (f *fakeEngine) Final() (string, error) {
	if f.resets == 0 || f.resets > len(f.finals) {
		return "", nil
	}

	return f.finals[f.resets-1], nil
}

type fakeSpeech struct {
	spoken []string
	stops  int
}

func (f *fakeSpeech) Speak(text string) {
	f.spoken = append(f.spoken, text)
}

func (f *fakeSpeech) Stop() {
	f.stops++
}

func (f *fakeSpeech) Shutdown() {}

type fakeBot struct {
	dispatched []interpreter.Command
}

func (f *fakeBot) Dispatch(_ context.Context, cmd interpreter.Command) (music_bot.Response, error) {
	f.dispatched = append(f.dispatched, cmd)

	return music_bot.Response{}, nil
}

func newTestAssistant(t *testing.T, detector wake_word.Interface, engine *fakeEngine, speech *fakeSpeech, bot music_bot.MusicBotAPI) Interface {
	t.Helper()

	tuning := &config.Tuning{RMSThreshold: 900, SilenceDuration: 100 * time.Millisecond}

	a, err := New(&Config{
		Source:    &fakeSource{},
		Detector:  detector,
		STTEngine: engine,
		Speech:    speech,
		MusicBot:  bot,
		Tuning:    tuning,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return a
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}

func TestAssistant_Run(t *testing.T) {
	t.Run("terminate command ends the loop after a goodbye", func(t *testing.T) {
		speech := &fakeSpeech{}
		bot := &fakeBot{}

		a := newTestAssistant(t, &fakeDetector{wakes: 1}, &fakeEngine{finals: []string{"jarvis self destruct"}}, speech, bot)

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !contains(speech.spoken, "Yes?") {
			t.Errorf("expected wake acknowledgement, got %v", speech.spoken)
		}

		if !contains(speech.spoken, "Goodbye.") {
			t.Errorf("expected goodbye, got %v", speech.spoken)
		}

		if speech.stops == 0 {
			t.Error("expected in-flight speech to be interrupted on wake")
		}

		if len(bot.dispatched) != 0 {
			t.Errorf("expected no dispatches, got %v", bot.dispatched)
		}
	})

	t.Run("play command is dispatched with its query before the loop continues", func(t *testing.T) {
		speech := &fakeSpeech{}
		bot := &fakeBot{}

		engine := &fakeEngine{finals: []string{"jarvis, play Bohemian Rhapsody", "kill self"}}

		a := newTestAssistant(t, &fakeDetector{wakes: 2}, engine, speech, bot)

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(bot.dispatched) != 1 {
			t.Fatalf("expected 1 dispatch, got %d", len(bot.dispatched))
		}

		cmd := bot.dispatched[0]
		if cmd.Kind != interpreter.KindPlay || cmd.Query != "Bohemian Rhapsody" {
			t.Errorf("unexpected dispatched command: %+v", cmd)
		}

		if !contains(speech.spoken, "Playing Bohemian Rhapsody") {
			t.Errorf("expected play acknowledgement, got %v", speech.spoken)
		}
	})

	t.Run("cancel short-circuits back to listening without dispatching", func(t *testing.T) {
		speech := &fakeSpeech{}
		bot := &fakeBot{}

		engine := &fakeEngine{finals: []string{"cancel that", "self destruct"}}

		a := newTestAssistant(t, &fakeDetector{wakes: 2}, engine, speech, bot)

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !contains(speech.spoken, "Cancelled.") {
			t.Errorf("expected cancel acknowledgement, got %v", speech.spoken)
		}

		if len(bot.dispatched) != 0 {
			t.Errorf("expected no dispatches, got %v", bot.dispatched)
		}
	})

	t.Run("an unavailable detector degrades to an empty pre-roll", func(t *testing.T) {
		speech := &fakeSpeech{}

		engine := &fakeEngine{finals: []string{"self destruct"}}

		a := newTestAssistant(t, &fakeDetector{err: wake_word.ErrDetectorUnavailable}, engine, speech, &fakeBot{})

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !contains(speech.spoken, "Goodbye.") {
			t.Errorf("expected the terminate cycle to complete, got %v", speech.spoken)
		}
	})

	t.Run("an empty transcript is a silent no-op cycle", func(t *testing.T) {
		speech := &fakeSpeech{}
		bot := &fakeBot{}

		engine := &fakeEngine{finals: []string{"", "kill self"}}

		a := newTestAssistant(t, &fakeDetector{wakes: 2}, engine, speech, bot)

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if contains(speech.spoken, "Huh?") {
			t.Errorf("expected no spoken response for an empty transcript, got %v", speech.spoken)
		}

		if len(bot.dispatched) != 0 {
			t.Errorf("expected no dispatches, got %v", bot.dispatched)
		}
	})

	t.Run("unrecoverable listening errors end the loop", func(t *testing.T) {
		speech := &fakeSpeech{}

		a := newTestAssistant(t, &fakeDetector{err: fmt.Errorf("microphone vanished")}, &fakeEngine{}, speech, &fakeBot{})

		if err := a.Run(context.Background()); err == nil {
			t.Error("expected an error when the audio source fails")
		}
	})
}
