package vectorstore

import (
	"net/http"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("VECTOR_STORE")

// FAILURE is the umbrella kind. EMBED_FAILED, UPSERT_FAILED, QUERY_FAILED and INVALID_METADATA refine it.
var (
	CodeFailure         = ErrRegistry.Register("FAILURE", errx.TypeExternal, http.StatusServiceUnavailable, "Vector store failure")
	CodeEmbedFailed     = ErrRegistry.Register("EMBED_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to embed text")
	CodeUpsertFailed    = ErrRegistry.Register("UPSERT_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to write vector record")
	CodeQueryFailed     = ErrRegistry.Register("QUERY_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to query vector records")
	CodeInvalidMetadata = ErrRegistry.Register("INVALID_METADATA", errx.TypeValidation, http.StatusBadRequest, "Metadata values must be JSON scalars")
	CodeInvalidRecord   = ErrRegistry.Register("INVALID_RECORD", errx.TypeValidation, http.StatusBadRequest, "Vector record is invalid")
	CodeRecordNotFound  = ErrRegistry.Register("RECORD_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Vector record not found")
	CodeRecordExists    = ErrRegistry.Register("RECORD_EXISTS", errx.TypeConflict, http.StatusConflict, "Vector record already exists")
)

func ErrFailure() *errx.Error {
	return ErrRegistry.New(CodeFailure)
}

func ErrEmbedFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbedFailed)
}

func ErrUpsertFailed() *errx.Error {
	return ErrRegistry.New(CodeUpsertFailed)
}

func ErrQueryFailed() *errx.Error {
	return ErrRegistry.New(CodeQueryFailed)
}

func ErrInvalidMetadata() *errx.Error {
	return ErrRegistry.New(CodeInvalidMetadata)
}

func ErrInvalidRecord() *errx.Error {
	return ErrRegistry.New(CodeInvalidRecord)
}

func ErrRecordNotFound() *errx.Error {
	return ErrRegistry.New(CodeRecordNotFound)
}

func ErrRecordExists() *errx.Error {
	return ErrRegistry.New(CodeRecordExists)
}

// IsFailure reports whether err is any vector store failure kind
func IsFailure(err error) bool {
	return errx.IsCode(err, CodeFailure) ||
		errx.IsCode(err, CodeEmbedFailed) ||
		errx.IsCode(err, CodeUpsertFailed) ||
		errx.IsCode(err, CodeQueryFailed) ||
		errx.IsCode(err, CodeInvalidMetadata)
}
