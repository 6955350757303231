package advisor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

// OllamaProvider runs recommendations against a local Ollama vision model.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllama creates an Ollama-backed advisor for the given endpoint.
func NewOllama(ollamaURL, model string) (*OllamaProvider, error) {
	parsed, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("advisor: invalid Ollama URL: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &OllamaProvider{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// Name implements Provider.
func (p *OllamaProvider) Name() string { return "ollama" }

// Recommend implements Provider.
func (p *OllamaProvider) Recommend(ctx context.Context, req Request) (*guidance.StructuredResponse, error) {
	// Local vision models on CPU can be slow; cap the wait if the caller
	// has not already.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	var images []api.ImageData
	for _, img := range [][]byte{req.Frame, req.Reference} {
		if len(img) > 0 {
			images = append(images, api.ImageData(img))
		}
	}

	streamFalse := false
	chatReq := &api.ChatRequest{
		Model: p.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: buildPrompt(req),
				Images:  images,
			},
		},
		Stream: &streamFalse,
	}

	var responseContent string
	err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: ollama chat error: %w", err)
	}

	return parseResponse(responseContent)
}
