package music_bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"jarvis-voice-assistant/interpreter"
)

const (
	defaultAttempts   = 3
	defaultRetryDelay = time.Second
)

type clientImpl struct {
	apiHost        string
	guildID        string
	userID         string
	voiceChannelID string

	httpClient *http.Client
	attempts   int
	retryDelay time.Duration
}

type Config struct {
	// ApiHost is the base URL of the music bot API, ending in a slash.
	ApiHost string

	GuildID        string
	UserID         string
	VoiceChannelID string

	HTTPClient *http.Client

	// Attempts bounds the retry budget. Defaults to 3.
	Attempts int

	// RetryDelay is the fixed delay between attempts. Defaults to 1s.
	RetryDelay time.Duration
}

type commandOptions struct {
	Query     string `json:"query,omitempty"`
	Immediate bool   `json:"immediate,omitempty"`
}

type commandPayload struct {
	GuildID        string         `json:"guildId"`
	UserID         string         `json:"userId"`
	VoiceChannelID string         `json:"voiceChannelId"`
	Options        commandOptions `json:"options"`
}

func NewClient(cfg *Config) (MusicBotAPI, error) {
	if cfg == nil {
		return nil, errors.New("missing parameter: cfg")
	}

	if cfg.ApiHost == "" {
		return nil, errors.New("missing parameter: cfg.ApiHost")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	return &clientImpl{
		apiHost:        cfg.ApiHost,
		guildID:        cfg.GuildID,
		userID:         cfg.UserID,
		voiceChannelID: cfg.VoiceChannelID,
		httpClient:     httpClient,
		attempts:       attempts,
		retryDelay:     retryDelay,
	}, nil
}

// Dispatch posts the command to the music bot, retrying transport-level
// failures up to the attempt budget with a fixed delay. A malformed 2xx
// response fails immediately.
func (client *clientImpl) Dispatch(ctx context.Context, cmd interpreter.Command) (Response, error) {
	if !cmd.Dispatchable() {
		return nil, fmt.Errorf("command %q is not dispatchable", cmd.Kind)
	}

	payload := commandPayload{
		GuildID:        client.guildID,
		UserID:         client.userID,
		VoiceChannelID: client.voiceChannelID,
	}

	if cmd.Kind == interpreter.KindPlay {
		payload.Options = commandOptions{
			Query:     cmd.Query,
			Immediate: cmd.Immediate,
		}
	}

	url := client.apiHost + string(cmd.Kind)

	var lastErr error

	for attempt := 1; attempt <= client.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(client.retryDelay):
			}
		}

		resp, err := client.post(ctx, url, payload)
		if err == nil {
			return resp, nil
		}

		if errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}

		lastErr = err

		log.Printf("dispatch attempt %d/%d for %s failed: %v", attempt, client.attempts, cmd.Kind, err)
	}

	return nil, fmt.Errorf("%w: %v", ErrTransportFailure, lastErr)
}

func (client *clientImpl) post(ctx context.Context, url string, payload commandPayload) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("music bot returned status %d", resp.StatusCode)
	}

	var decoded Response

	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return decoded, nil
}
