package music_bot

import (
	"context"
	"errors"

	"jarvis-voice-assistant/interpreter"
)

// ErrTransportFailure marks a dispatch whose retry budget is exhausted.
var ErrTransportFailure = errors.New("music bot request failed")

// ErrMalformedResponse marks a 2xx response whose body is not valid JSON.
// Not retried; retrying cannot fix a broken payload.
var ErrMalformedResponse = errors.New("music bot returned a malformed response")

// Response is the decoded JSON body returned by the music bot.
type Response map[string]any

type MusicBotAPI interface {
	Dispatch(ctx context.Context, cmd interpreter.Command) (Response, error)
}
