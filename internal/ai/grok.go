package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const grokURL = "https://api.groq.com/openai/v1/chat/completions"

type grokClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewGrokClient creates a Groq chat-completions client.
func NewGrokClient(apiKey, model string) Client {
	return &grokClient{
		apiKey:     apiKey,
		model:      model,
		endpoint:   grokURL,
		httpClient: &http.Client{},
	}
}

// NewGrokClientWithEndpoint is NewGrokClient with an explicit endpoint, for tests.
func NewGrokClientWithEndpoint(apiKey, model, endpoint string) Client {
	return &grokClient{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []grokMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// DraftCoverLetter sends the fixed prompt to Groq and returns the
// completion text. No retries and no timeout here: a failure propagates to
// the orchestrator's per-card boundary.
func (c *grokClient) DraftCoverLetter(ctx context.Context, resumeSummary, jobSummary string) (string, error) {
	reqBody := grokRequest{
		Model: c.model,
		Messages: []grokMessage{
			{
				Role:    "user",
				Content: buildCoverLetterPrompt(resumeSummary, jobSummary),
			},
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grok request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grok API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var grokResp grokResponse
	if err := json.Unmarshal(bodyBytes, &grokResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if grokResp.Error != nil {
		return "", fmt.Errorf("API error: %s", grokResp.Error.Message)
	}

	// Some providers answer with heterogeneous shapes; fall back to the
	// raw body rather than dropping a successful response on the floor.
	if len(grokResp.Choices) == 0 || strings.TrimSpace(grokResp.Choices[0].Message.Content) == "" {
		return strings.TrimSpace(string(bodyBytes)), nil
	}

	return strings.TrimSpace(grokResp.Choices[0].Message.Content), nil
}
