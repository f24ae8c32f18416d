package advisory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig configures GeminiModel.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	// BaseURL overrides the API endpoint (tests, proxies). Empty uses the default.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiModel is a Model on the Gemini API.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiModel creates the underlying genai client.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrModelUnavailable
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiModel{client: client, model: cfg.Model, temperature: cfg.Temperature}, nil
}

// Generate sends the composed text and the optional inline image as a single
// user turn and returns the concatenated text of the first candidate, or ""
// when the model produced none.
func (m *GeminiModel) Generate(ctx context.Context, p Prompt) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(p.Text)}
	if p.Image != nil && len(p.Image.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(p.Image.Data, p.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(m.temperature),
	})
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return "", &GatewayError{Message: "advisory model rejected the request", Status: apiErr.Code, Err: err}
		}
		return "", err
	}

	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != "" && pf.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(pf.BlockReason)
		if pf.BlockReasonMessage != "" {
			reason = pf.BlockReasonMessage
		}
		return "", &GatewayError{Message: "request blocked by safety filter: " + reason, Status: http.StatusUnprocessableEntity}
	}
	// No candidates: an empty reply.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
