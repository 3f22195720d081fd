package resumeparser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/mitchellh/mapstructure"
)

// StripFences removes a leading ```lang marker and a trailing ``` marker.
// Text without fences is returned trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// drop the language tag up to the first newline
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "{[") {
				s = s[nl+1:]
			}
		} else {
			s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Normalize turns a raw model reply into a StructuredResume
func Normalize(raw string) (*StructuredResume, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	if err := resumeSchema.Validate(doc); err != nil {
		return nil, ErrSchemaMismatch().
			WithDetail("violation", err.Error()).
			WithCause(err)
	}

	var resume StructuredResume
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       objectToStringHook,
		WeaklyTypedInput: true,
		Result:           &resume,
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to build resume decoder", errx.TypeInternal)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, ErrMalformedResponse().
			WithDetail("reason", err.Error()).
			WithCause(err)
	}

	resume.fillDefaults()
	return &resume, nil
}

// DecodeJSON strips fences and unmarshals the reply into v
func DecodeJSON(raw string, v any) error {
	body := locateJSON(StripFences(raw))
	if body == "" {
		return ErrNoJSON().WithDetail("response", logx.Truncate(raw, 200))
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return ErrMalformedResponse().
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return nil
}

// parseDocument finds the first parseable JSON value in the reply
func parseDocument(raw string) (any, error) {
	body := locateJSON(StripFences(raw))
	if body == "" {
		return nil, ErrNoJSON().WithDetail("response", logx.Truncate(raw, 200))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrNoJSON().
			WithDetail("response", logx.Truncate(raw, 200)).
			WithCause(err)
	}
	return doc, nil
}

// locateJSON returns s when it is valid JSON, otherwise the outermost
// {...} span. Empty when neither parses.
func locateJSON(s string) string {
	if s == "" {
		return ""
	}
	if json.Valid([]byte(s)) {
		return s
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	candidate := s[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return ""
	}
	return candidate
}

// objectToStringHook renders project and certification objects as one line
func objectToStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	return renderObject(m), nil
}

func renderObject(m map[string]any) string {
	head := firstString(m, "title", "name")
	desc := firstString(m, "description", "issuer", "summary")
	switch {
	case head != "" && desc != "":
		return head + ": " + desc
	case head != "":
		return head
	case desc != "":
		return desc
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if m[k] == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return ""
}
