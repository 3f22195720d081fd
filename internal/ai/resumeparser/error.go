package resumeparser

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME_PARSE")

// The model reply could not be used. NO_JSON and SCHEMA_MISMATCH refine the
// generic malformed response so callers can choose a corrective retry.
var (
	CodeMalformedResponse = ErrRegistry.Register("MALFORMED_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "Model response is malformed")
	CodeNoJSON            = ErrRegistry.Register("NO_JSON", errx.TypeExternal, http.StatusBadGateway, "Model response contains no JSON object")
	CodeSchemaMismatch    = ErrRegistry.Register("SCHEMA_MISMATCH", errx.TypeExternal, http.StatusBadGateway, "Model response does not match the resume schema")
)

func ErrMalformedResponse() *errx.Error {
	return ErrRegistry.New(CodeMalformedResponse)
}

func ErrNoJSON() *errx.Error {
	return ErrRegistry.New(CodeNoJSON)
}

func ErrSchemaMismatch() *errx.Error {
	return ErrRegistry.New(CodeSchemaMismatch)
}

// IsMalformedResponse reports whether err is any of the malformed response kinds
func IsMalformedResponse(err error) bool {
	return errx.IsCode(err, CodeMalformedResponse) ||
		errx.IsCode(err, CodeNoJSON) ||
		errx.IsCode(err, CodeSchemaMismatch)
}
