package docextract

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("DOCUMENT")

var (
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusUnsupportedMediaType, "Unsupported document format")
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "Failed to extract text from document")
)

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}
