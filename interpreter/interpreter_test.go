package interpreter

import "testing"

func TestInterpret(t *testing.T) {
	cases := []struct {
		name       string
		transcript string
		want       Command
		wantOK     bool
	}{
		{
			name:       "play with wake word keeps the song title capitalization",
			transcript: "jarvis, play Bohemian Rhapsody",
			want:       Command{Kind: KindPlay, Query: "Bohemian Rhapsody"},
			wantOK:     true,
		},
		{
			name:       "play immediately sets the immediate flag and strips the token",
			transcript: "play immediately lofi beats",
			want:       Command{Kind: KindPlay, Query: "lofi beats", Immediate: true},
			wantOK:     true,
		},
		{
			name:       "played keys the same extraction as play",
			transcript: "played Take Five",
			want:       Command{Kind: KindPlay, Query: "Take Five"},
			wantOK:     true,
		},
		{
			name:       "cancel wins even when other keywords appear",
			transcript: "cancel that, don't play anything",
			want:       Command{Kind: KindCancel},
			wantOK:     true,
		},
		{
			name:       "now playing",
			transcript: "what is now playing",
			want:       Command{Kind: KindNowPlaying},
			wantOK:     true,
		},
		{
			name:       "stop",
			transcript: "Jarvis stop",
			want:       Command{Kind: KindStop},
			wantOK:     true,
		},
		{
			name:       "pause",
			transcript: "pause the music",
			want:       Command{Kind: KindPause},
			wantOK:     true,
		},
		{
			name:       "resume",
			transcript: "resume",
			want:       Command{Kind: KindResume},
			wantOK:     true,
		},
		{
			name:       "skip maps to next",
			transcript: "skip this one",
			want:       Command{Kind: KindNext},
			wantOK:     true,
		},
		{
			name:       "clear",
			transcript: "clear the queue",
			want:       Command{Kind: KindClear},
			wantOK:     true,
		},
		{
			name:       "kill self terminates",
			transcript: "kill self",
			want:       Command{Kind: KindTerminate},
			wantOK:     true,
		},
		{
			name:       "self destruct terminates",
			transcript: "self destruct",
			want:       Command{Kind: KindTerminate},
			wantOK:     true,
		},
		{
			name:       "unrecognized text",
			transcript: "make me a sandwich",
			want:       Command{Kind: KindUnrecognized},
			wantOK:     true,
		},
		{
			name:       "empty transcript emits nothing",
			transcript: "",
			wantOK:     false,
		},
		{
			name:       "wake word alone emits nothing",
			transcript: "jarvis",
			wantOK:     false,
		},
		{
			name:       "play without a query emits nothing",
			transcript: "jarvis play",
			wantOK:     false,
		},
		{
			name:       "play immediately without a query emits nothing",
			transcript: "play immediately",
			wantOK:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Interpret(tc.transcript)

			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}

			if !ok {
				return
			}

			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		first, _ := Interpret("jarvis, play Bohemian Rhapsody")

		for i := 0; i < 10; i++ {
			again, _ := Interpret("jarvis, play Bohemian Rhapsody")
			if again != first {
				t.Fatalf("call %d: expected %+v, got %+v", i, first, again)
			}
		}
	})
}

func TestStripWakeWord(t *testing.T) {
	t.Run("strips only a leading wake word", func(t *testing.T) {
		if got := StripWakeWord("play jarvis by another artist"); got != "play jarvis by another artist" {
			t.Errorf("expected mid-sentence wake word to survive, got %q", got)
		}
	})

	t.Run("handles the trailing comma", func(t *testing.T) {
		if got := StripWakeWord("Jarvis, stop"); got != "stop" {
			t.Errorf("expected %q, got %q", "stop", got)
		}
	})
}
