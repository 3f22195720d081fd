package llm

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("LLM")

var (
	CodeUnsupportedProvider = ErrRegistry.Register("UNSUPPORTED_PROVIDER", errx.TypeValidation, http.StatusBadRequest, "LLM provider is not supported")
	CodeEmptyPrompt         = ErrRegistry.Register("EMPTY_PROMPT", errx.TypeValidation, http.StatusBadRequest, "Prompt must not be empty")
	CodeEmptyResponse       = ErrRegistry.Register("EMPTY_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "LLM provider returned an empty response")
	CodeProviderFailure     = ErrRegistry.Register("PROVIDER_FAILURE", errx.TypeExternal, http.StatusBadGateway, "LLM provider request failed")
)

func ErrUnsupportedProvider() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedProvider)
}

func ErrEmptyPrompt() *errx.Error {
	return ErrRegistry.New(CodeEmptyPrompt)
}

func ErrEmptyResponse() *errx.Error {
	return ErrRegistry.New(CodeEmptyResponse)
}

func ErrProviderFailure() *errx.Error {
	return ErrRegistry.New(CodeProviderFailure)
}
