package tts_engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type clientImpl struct {
	apiHost    string
	voice      string
	httpClient *http.Client
}

type Config struct {
	// ApiHost is the base URL of a Coqui-style TTS server exposing
	// GET /api/tts?text=...
	ApiHost string

	// Voice selects a speaker on multi-speaker models. Optional.
	Voice string

	HTTPClient *http.Client
}

func NewClient(cfg *Config) (TTSEngineAPI, error) {
	if cfg == nil {
		return nil, errors.New("missing parameter: cfg")
	}

	if cfg.ApiHost == "" {
		return nil, errors.New("missing parameter: cfg.ApiHost")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &clientImpl{
		apiHost:    strings.TrimRight(cfg.ApiHost, "/"),
		voice:      cfg.Voice,
		httpClient: httpClient,
	}, nil
}

func (client *clientImpl) Synthesize(ctx context.Context, text string) ([]int16, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.apiHost+"/api/tts", nil)
	if err != nil {
		return nil, 0, err
	}

	q := req.URL.Query()
	q.Add("text", text)

	if client.voice != "" {
		q.Add("speaker_id", client.voice)
	}

	req.URL.RawQuery = q.Encode()

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, fmt.Errorf("tts server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return decodeWave(body)
}
