package errx

import (
	"fmt"
	"sync"
)

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain under a common prefix
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[string]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[string]definition),
	}
}

// Register declares a code and returns its fully-qualified form (PREFIX_CODE)
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) string {
	full := r.prefix + "_" + code

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.defs[full] = definition{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New builds an error for a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: statusForType(TypeInternal),
		}
	}

	return &Error{
		Code:       code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause builds an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code string, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// NewWithMessage builds an error for a registered code overriding its message
func (r *Registry) NewWithMessage(code string, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}

// Codes lists every registered code
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.defs))
	for c := range r.defs {
		codes = append(codes, c)
	}
	return codes
}
