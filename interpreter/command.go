package interpreter

// Kind identifies a voice command. For commands the music bot accepts
// directly, the value doubles as the API path segment.
type Kind string

const (
	KindNowPlaying   Kind = "now-playing"
	KindPlay         Kind = "play"
	KindStop         Kind = "stop"
	KindPause        Kind = "pause"
	KindResume       Kind = "resume"
	KindNext         Kind = "next"
	KindClear        Kind = "clear"
	KindCancel       Kind = "cancel"
	KindTerminate    Kind = "terminate"
	KindUnrecognized Kind = "unrecognized"
)

// Command is one interpreted voice command. Query and Immediate are only
// meaningful for KindPlay.
type Command struct {
	Kind      Kind
	Query     string
	Immediate bool
}

// Dispatchable reports whether the command maps to a music bot API call.
func (c Command) Dispatchable() bool {
	switch c.Kind {
	case KindNowPlaying, KindPlay, KindStop, KindPause, KindResume, KindNext, KindClear:
		return true
	}

	return false
}

// Acknowledgement is the spoken response confirming the command.
func (c Command) Acknowledgement() string {
	switch c.Kind {
	case KindNowPlaying:
		return "Now playing."
	case KindPlay:
		return "Playing " + c.Query
	case KindStop:
		return "Stopping."
	case KindPause:
		return "Pausing."
	case KindResume:
		return "Resuming."
	case KindNext:
		return "Skipping."
	case KindClear:
		return "Clearing."
	case KindCancel:
		return "Cancelled."
	case KindTerminate:
		return "Goodbye."
	case KindUnrecognized:
		return "Huh?"
	}

	return ""
}
