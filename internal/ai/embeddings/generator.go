package embeddings

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultModel = "text-embedding-3-small"

var ErrRegistry = errx.NewRegistry("EMBEDDING")

var (
	CodeEmptyText      = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Text to embed must not be empty")
	CodeGenerateFailed = ErrRegistry.Register("GENERATE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate embedding")
)

type embeddingsAPI interface {
	New(ctx context.Context, body openai.EmbeddingNewParams, opts ...option.RequestOption) (*openai.CreateEmbeddingResponse, error)
}

// Generator creates embedding vectors with the OpenAI embeddings API
type Generator struct {
	api   embeddingsAPI
	model string
}

// NewGenerator creates a new embeddings generator
func NewGenerator(apiKey, model string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return newGenerator(&client.Embeddings, model)
}

func newGenerator(api embeddingsAPI, model string) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Generator{api: api, model: model}
}

// Model returns the embedding model name
func (g *Generator) Model() string { return g.model }

// Embed creates an embedding vector for text
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch creates one embedding per text, in input order
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrRegistry.New(CodeEmptyText)
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, ErrRegistry.New(CodeEmptyText).WithDetail("index", i)
		}
	}

	// Send as array (works consistently for one or many)
	resp, err := g.api.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: openai.EmbeddingModel(g.model),
	})
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeGenerateFailed, err).WithDetail("model", g.model)
	}

	if len(resp.Data) != len(texts) {
		return nil, ErrRegistry.New(CodeGenerateFailed).
			WithDetail("model", g.model).
			WithDetail("reason", "embedding count does not match input count")
	}

	vectors := make([][]float32, len(texts))
	for i, data := range resp.Data {
		idx := int(data.Index)
		if idx < 0 || idx >= len(vectors) {
			idx = i
		}
		vectors[idx] = toFloat32(data.Embedding)
	}

	return vectors, nil
}

// Convert []float64 to []float32
func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
