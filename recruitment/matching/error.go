package matching

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MATCHING")

// Error codes
var (
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid matching request")
	CodeNotIndexed     = ErrRegistry.Register("NOT_INDEXED", errx.TypeNotFound, http.StatusNotFound, "Record is not indexed for matching")
)

// Helper functions
func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotIndexed() *errx.Error {
	return ErrRegistry.New(CodeNotIndexed)
}

// IsPermanent reports whether a pipeline error would fail again on retry
func IsPermanent(err error) bool {
	return errx.IsCode(err, docextract.CodeUnsupportedFormat) ||
		errx.IsCode(err, docextract.CodeExtractionFailed) ||
		errx.IsCode(err, llm.CodeUnsupportedProvider) ||
		errx.IsCode(err, llm.CodeEmptyPrompt) ||
		errx.IsCode(err, CodeInvalidRequest) ||
		resumeparser.IsMalformedResponse(err)
}
