package llm

import (
	"context"
	"strings"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultChatGPTModel = "gpt-4o-mini"

type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// ChatGPTProvider generates text with OpenAI chat completions
type ChatGPTProvider struct {
	completions chatCompleter
	model       string
}

// NewChatGPTProvider creates an OpenAI provider
func NewChatGPTProvider(apiKey, model string) (*ChatGPTProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errx.New("openai api key is required", errx.TypeValidation)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		// retries are owned by the resilience executor
		option.WithMaxRetries(0),
	)

	return newChatGPTProvider(&client.Chat.Completions, model), nil
}

func newChatGPTProvider(completions chatCompleter, model string) *ChatGPTProvider {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultChatGPTModel
	}
	return &ChatGPTProvider{completions: completions, model: model}
}

func (p *ChatGPTProvider) Name() string { return ProviderChatGPT }

// Model returns the configured model name
func (p *ChatGPTProvider) Model() string { return p.model }

// Generate sends the prompt as a single user message and returns the first choice
func (p *ChatGPTProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt()
	}

	completion, err := p.completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		return "", ErrProviderFailure().
			WithDetail("provider", ProviderChatGPT).
			WithCause(err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse().WithDetail("provider", ProviderChatGPT)
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse().WithDetail("provider", ProviderChatGPT)
	}
	return content, nil
}
