// Package gemini calls the Gemini generateContent endpoint, cascading
// across an ordered list of model candidates when one is rate limited
// or gone. The caller always gets a usable string back.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// FallbackMessage is returned when every model candidate has failed
const FallbackMessage = "ちょっと今忙しいけん、後でまた聞いて。知らんけど。"

// DefaultModels is the candidate list in priority order, strongest and
// most likely available first. The ordering is operationally tunable.
var DefaultModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
}

// Client is a client for the Gemini generateContent API
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	models     []string
}

// NewClient creates a new Gemini client
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		models:     DefaultModels,
	}
}

// SetModels allows overriding the default candidate list
func (c *Client) SetModels(models []string) {
	c.models = models
}

// SetBaseURL allows overriding the API endpoint
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// generateRequest is the generateContent request body
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// generateResponse is the generateContent response body
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// defaultGenerationConfig is fixed; generation parameters are not
// caller-tunable.
var defaultGenerationConfig = generationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// GenerateResponse sends the prompt to each model candidate in order
// and returns the first non-empty completion. Every failure path
// resolves to FallbackMessage; the last failure reason is logged, never
// surfaced to the caller.
func (c *Client) GenerateResponse(ctx context.Context, prompt string) string {
	var lastFailure string

	for _, model := range c.models {
		log.Printf("Trying Gemini model: %s", model)

		text, err := c.invokeModel(ctx, model, prompt)
		if err != nil {
			log.Printf("Gemini model %s failed: %v", model, err)
			lastFailure = err.Error()
			if Classify(err) == TryNext {
				continue
			}
			break
		}

		if text == "" {
			lastFailure = fmt.Sprintf("model %s returned empty response", model)
			continue
		}

		log.Printf("Generated response with model: %s", model)
		return text
	}

	log.Printf("All Gemini models failed: %s", lastFailure)
	return FallbackMessage
}

// invokeModel issues a single generateContent call. A non-2xx reply
// becomes an *apiError carrying the raw status and body so the cascade
// can classify it. A 2xx reply without completion text returns ("", nil).
func (c *Client) invokeModel(ctx context.Context, model, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: defaultGenerationConfig,
		SafetySettings:   defaultSafetySettings,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &apiError{status: resp.StatusCode, body: string(respBody)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
