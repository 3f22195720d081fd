package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NewCarriesDefinition(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("MISSING", TypeNotFound, http.StatusNotFound, "thing not found")

	assert.Equal(t, "TEST_MISSING", code)

	err := reg.New(code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "thing not found", err.Message)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	reg := NewRegistry("DUP")
	reg.Register("X", TypeInternal, http.StatusInternalServerError, "x")

	assert.Panics(t, func() {
		reg.Register("X", TypeInternal, http.StatusInternalServerError, "x")
	})
}

func TestError_IsMatchesByCode(t *testing.T) {
	reg := NewRegistry("IS")
	code := reg.Register("A", TypeValidation, http.StatusBadRequest, "a")

	wrapped := fmt.Errorf("outer: %w", reg.New(code).WithDetail("k", "v"))

	assert.True(t, errors.Is(wrapped, reg.New(code)))
	assert.True(t, IsCode(wrapped, code))
	assert.False(t, IsCode(wrapped, "IS_B"))
}

func TestWrap_KeepsRegisteredCode(t *testing.T) {
	reg := NewRegistry("WRAP")
	code := reg.Register("INNER", TypeConflict, http.StatusConflict, "inner")

	err := Wrap(reg.New(code), "while saving", TypeInternal)
	require.NotNil(t, err)
	assert.Equal(t, code, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)

	plain := Wrap(errors.New("boom"), "while saving", TypeInternal)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
	assert.ErrorContains(t, plain, "boom")

	assert.Nil(t, Wrap(nil, "nothing", TypeInternal))
}

func TestToHTTPResponse(t *testing.T) {
	reg := NewRegistry("HTTP")
	code := reg.Register("BAD", TypeValidation, http.StatusBadRequest, "bad input")

	resp := reg.New(code).WithDetails(map[string]any{"field": "amount"}).ToHTTPResponse()

	assert.Equal(t, code, resp["code"])
	assert.Equal(t, TypeValidation, resp["type"])
	assert.Equal(t, "bad input", resp["message"])
	assert.Equal(t, map[string]any{"field": "amount"}, resp["details"])
}
