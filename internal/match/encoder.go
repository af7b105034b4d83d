package match

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultEmbedURL = "https://api.groq.com/openai/v1/embeddings"

// Encoder maps a string to a fixed-size numeric vector. The backing model
// is assumed deterministic for identical input.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

type groqEncoder struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewGroqEncoder creates an embeddings client against an OpenAI-compatible
// /embeddings endpoint.
func NewGroqEncoder(apiKey, model string) Encoder {
	return &groqEncoder{
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultEmbedURL,
		httpClient: &http.Client{},
	}
}

// NewEncoderWithEndpoint is NewGroqEncoder with an explicit endpoint,
// for self-hosted embedding servers and tests.
func NewEncoderWithEndpoint(apiKey, model, endpoint string) Encoder {
	return &groqEncoder{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (e *groqEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	jsonData, err := json.Marshal(embedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var embedResp embedResponse
	if err := json.Unmarshal(bodyBytes, &embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if embedResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", embedResp.Error.Message)
	}

	if len(embedResp.Data) == 0 || len(embedResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return embedResp.Data[0].Embedding, nil
}
