package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type stubProvider struct {
	name    string
	replies []string
	errs    []error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", nil
}

func TestRegistryResolve(t *testing.T) {
	gemini := &stubProvider{name: ProviderGemini}
	chatgpt := &stubProvider{name: ProviderChatGPT}
	r := NewRegistry(ProviderGemini, gemini, chatgpt)

	p, err := r.Resolve("ChatGPT")
	require.NoError(t, err)
	assert.Same(t, chatgpt, p)

	p, err = r.Resolve("")
	require.NoError(t, err)
	assert.Same(t, gemini, p)

	assert.Equal(t, []string{"chatgpt", "gemini"}, r.Names())
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry(ProviderGemini, &stubProvider{name: ProviderGemini})

	_, err := r.Resolve("claude")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeUnsupportedProvider))

	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
	assert.Equal(t, "claude", e.Details["provider"])
}

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error
	got  string
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.got = model
	return f.resp, f.err
}

func TestGeminiGenerateJoinsParts(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: `{"skills":`}, {Text: ` ["Go"]}`}}},
		}},
	}}
	p := newGeminiProvider(models, "")

	out, err := p.Generate(context.Background(), "structure this")
	require.NoError(t, err)
	assert.Equal(t, `{"skills": ["Go"]}`, out)
	assert.Equal(t, defaultGeminiModel, models.got)
}

func TestGeminiGenerateEmpty(t *testing.T) {
	p := newGeminiProvider(&fakeModels{resp: &genai.GenerateContentResponse{}}, "gemini-pro")

	_, err := p.Generate(context.Background(), "prompt")
	assert.True(t, errx.IsCode(err, CodeEmptyResponse))

	_, err = p.Generate(context.Background(), "  ")
	assert.True(t, errx.IsCode(err, CodeEmptyPrompt))
}

type fakeCompletions struct {
	completion *openai.ChatCompletion
	err        error
	params     openai.ChatCompletionNewParams
}

func (f *fakeCompletions) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.params = body
	return f.completion, f.err
}

func TestChatGPTGenerate(t *testing.T) {
	fc := &fakeCompletions{completion: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: " hello "}}},
	}}
	p := newChatGPTProvider(fc, "gpt-4o")

	out, err := p.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "gpt-4o", string(fc.params.Model))
	assert.Len(t, fc.params.Messages, 1)
}

func TestChatGPTGenerateNoChoices(t *testing.T) {
	p := newChatGPTProvider(&fakeCompletions{completion: &openai.ChatCompletion{}}, "")

	_, err := p.Generate(context.Background(), "prompt")
	assert.True(t, errx.IsCode(err, CodeEmptyResponse))
	assert.Equal(t, defaultChatGPTModel, p.Model())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"server error", ErrProviderFailure().WithCause(genai.APIError{Code: http.StatusServiceUnavailable}), true},
		{"bad request", ErrProviderFailure().WithCause(genai.APIError{Code: http.StatusBadRequest}), false},
		{"openai unauthorized", &openai.Error{StatusCode: http.StatusUnauthorized}, false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor("llm", resilience.Policy{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
		Timeout:         time.Second,
	})
}

func TestResilientRetriesTransient(t *testing.T) {
	stub := &stubProvider{
		name:    ProviderGemini,
		errs:    []error{ErrProviderFailure().WithCause(genai.APIError{Code: http.StatusInternalServerError})},
		replies: []string{"", "ok"},
	}
	p := Resilient(stub, testExecutor())

	out, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, ProviderGemini, p.Name())
}

func TestResilientDoesNotRetryPermanent(t *testing.T) {
	stub := &stubProvider{
		name: ProviderChatGPT,
		errs: []error{ErrProviderFailure().WithCause(&openai.Error{StatusCode: http.StatusBadRequest})},
	}
	p := Resilient(stub, testExecutor())

	_, err := p.Generate(context.Background(), "prompt")
	assert.True(t, errx.IsCode(err, CodeProviderFailure))
	assert.Equal(t, 1, stub.calls)
}
