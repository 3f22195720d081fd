package llm

import (
	"context"
	"strings"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider generates text with the Gemini API
type GeminiProvider struct {
	models geminiModels
	model  string
}

// NewGeminiProvider creates a Gemini provider for the given API key and model
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errx.New("gemini api key is required", errx.TypeValidation)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errx.Wrap(err, "create genai client", errx.TypeExternal)
	}

	return newGeminiProvider(client.Models, model), nil
}

func newGeminiProvider(models geminiModels, model string) *GeminiProvider {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{models: models, model: model}
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

// Model returns the configured model name
func (p *GeminiProvider) Model() string { return p.model }

// Generate sends the prompt and joins the text parts of every candidate
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt()
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", ErrProviderFailure().
			WithDetail("provider", ProviderGemini).
			WithCause(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse().WithDetail("provider", ProviderGemini)
	}
	return output, nil
}
