package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the narrow contract to the model gateway: one assembled
// request in, raw text plus usage metadata out. The gateway holds the
// provider credential; this client never sees it.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// Part is one block of a content turn: either plain text or an inline
// binary attachment. Exactly one of the two fields is set.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is a binary attachment. Data marshals as base64.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Content is one ordered exchange in the request payload.
type Content struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// GenerateConfig carries the fixed per-call settings. These are configuration
// constants of the caller, never user input.
type GenerateConfig struct {
	Temperature       float64 `json:"temperature"`
	SystemInstruction string  `json:"systemInstruction"`
}

type GenerateRequest struct {
	Model    string         `json:"model"`
	Contents []Content      `json:"contents"`
	Config   GenerateConfig `json:"config"`
}

// UsageMetadata mirrors the gateway's token accounting verbatim. Fields the
// gateway omits decode to zero; no consistency check is applied.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type GenerateResponse struct {
	Text          string         `json:"text"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gatewayProvider struct {
	client *http.Client
	url    string
}

// NewGatewayProvider builds a Provider talking to the gateway at url. Every
// call is bounded by timeout; a gateway that hangs past it fails the turn
// instead of hanging it forever.
func NewGatewayProvider(url string, timeout time.Duration) Provider {
	return &gatewayProvider{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (p *gatewayProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("could not decode gateway response: %w", err)
	}
	return &genResp, nil
}
