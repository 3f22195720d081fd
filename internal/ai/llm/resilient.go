package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

type resilientProvider struct {
	Provider
	executor *resilience.Executor
}

// Resilient wraps p so every Generate call runs under the executor.
// Rate limits, 5xx, timeouts and transport errors are retried. Other errors are not.
func Resilient(p Provider, executor *resilience.Executor) Provider {
	return &resilientProvider{Provider: p, executor: executor}
}

func (r *resilientProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return resilience.DoValue(ctx, r.executor, func(ctx context.Context) (string, error) {
		out, err := r.Provider.Generate(ctx, prompt)
		if err != nil && !IsTransient(err) {
			return "", resilience.Permanent(err)
		}
		return out, err
	})
}

// IsTransient reports whether a provider error is worth retrying
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	if status, ok := StatusCode(err); ok {
		return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// empty completions are retried
	if errx.IsCode(err, CodeEmptyResponse) {
		return true
	}
	return false
}

// StatusCode extracts the HTTP status from a provider SDK error
func StatusCode(err error) (int, bool) {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode, true
	}

	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code, true
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return gErrPtr.Code, true
	}
	return 0, false
}
