package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/promptlens/promptlens/internal/model"
)

const defaultReplicateBaseURL = "https://api.replicate.com/v1"

// ReplicateProvider implements ImageProvider against the Replicate
// predictions API: it starts a prediction and polls it to completion.
type ReplicateProvider struct {
	httpClient   *http.Client
	config       model.ImageProviderConfig
	baseURL      string
	pollInterval time.Duration
}

// NewReplicateProvider creates a new Replicate image provider
func NewReplicateProvider(config model.ImageProviderConfig) (*ReplicateProvider, error) {
	if config.APIToken == "" {
		return nil, fmt.Errorf("Replicate API token is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultReplicateBaseURL
	}

	return &ReplicateProvider{
		httpClient:   &http.Client{Timeout: timeout},
		config:       config,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		pollInterval: time.Second,
	}, nil
}

// Name returns the provider name
func (p *ReplicateProvider) Name() string {
	return "replicate"
}

// IsAvailable checks if the provider is configured with a token
func (p *ReplicateProvider) IsAvailable(ctx context.Context) bool {
	return p.config.APIToken != ""
}

// prediction is the subset of the Replicate prediction resource we consume
type prediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

// GenerateImage starts a prediction and polls until it succeeds or fails
func (p *ReplicateProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	version := p.config.Model
	if idx := strings.LastIndex(version, ":"); idx >= 0 {
		version = version[idx+1:]
	}

	width := req.Width
	if width == 0 {
		width = p.config.Width
	}
	height := req.Height
	if height == 0 {
		height = p.config.Height
	}
	steps := req.InferenceSteps
	if steps == 0 {
		steps = p.config.InferenceSteps
	}

	body, err := json.Marshal(map[string]interface{}{
		"version": version,
		"input": map[string]interface{}{
			"prompt":              req.Prompt,
			"width":               width,
			"height":              height,
			"num_inference_steps": steps,
		},
	})
	if err != nil {
		return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("encode request: %w", err)}
	}

	created, err := p.startPrediction(ctx, body)
	if err != nil {
		return nil, err
	}

	final, err := p.pollPrediction(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	if len(final.Output) == 0 {
		return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("prediction %s produced no output", final.ID)}
	}

	return &ImageResult{
		ImageURL: final.Output[0],
		Width:    width,
		Height:   height,
		Metadata: map[string]interface{}{
			"model":           p.config.Model,
			"inference_steps": steps,
			"prediction_id":   final.ID,
		},
	}, nil
}

// startPrediction submits the prediction request
func (p *ReplicateProvider) startPrediction(ctx context.Context, body []byte) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Token "+p.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &Error{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("start prediction: %s", strings.TrimSpace(string(msg))),
		}
	}

	var created prediction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	return &created, nil
}

// pollPrediction polls the prediction until it settles, honoring context
// cancellation between polls
func (p *ReplicateProvider) pollPrediction(ctx context.Context, id string) (*prediction, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/predictions/"+id, nil)
		if err != nil {
			return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("create poll request: %w", err)}
		}
		req.Header.Set("Authorization", "Token "+p.config.APIToken)

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, &Error{Provider: p.Name(), Err: err}
		}

		var current prediction
		decodeErr := json.NewDecoder(resp.Body).Decode(&current)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, &Error{Provider: p.Name(), Err: fmt.Errorf("decode poll response: %w", decodeErr)}
		}

		switch current.Status {
		case "succeeded":
			return &current, nil
		case "failed", "canceled":
			return nil, &Error{
				Provider: p.Name(),
				Err:      fmt.Errorf("prediction %s %s: %s", id, current.Status, current.Error),
			}
		}

		select {
		case <-ctx.Done():
			return nil, &Error{Provider: p.Name(), Err: ctx.Err()}
		case <-time.After(p.pollInterval):
		}
	}
}
