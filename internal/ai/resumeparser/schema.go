package resumeparser

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resumeJSONSchema accepts nulls and omitted keys (they normalize to empty) but
// rejects wrong types and objects that carry none of the resume keys.
const resumeJSONSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "text": {"type": ["string", "number", "null"]},
    "textList": {
      "type": ["array", "null"],
      "items": {"type": ["string", "number"]}
    },
    "looseList": {
      "type": ["array", "null"],
      "items": {"type": ["string", "object"]}
    }
  },
  "properties": {
    "location": {"$ref": "#/definitions/text"},
    "total_experience": {"$ref": "#/definitions/text"},
    "skills": {"$ref": "#/definitions/textList"},
    "interests": {"$ref": "#/definitions/textList"},
    "certifications": {"$ref": "#/definitions/looseList"},
    "projects": {"$ref": "#/definitions/looseList"},
    "work_experience": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title": {"$ref": "#/definitions/text"},
          "company": {"$ref": "#/definitions/text"},
          "position": {"$ref": "#/definitions/text"},
          "start_date": {"$ref": "#/definitions/text"},
          "end_date": {"$ref": "#/definitions/text"},
          "description": {"$ref": "#/definitions/text"}
        }
      }
    },
    "education": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "degree": {"$ref": "#/definitions/text"},
          "institute": {"$ref": "#/definitions/text"},
          "field_of_study": {"$ref": "#/definitions/text"},
          "start_date": {"$ref": "#/definitions/text"},
          "end_date": {"$ref": "#/definitions/text"}
        }
      }
    }
  },
  "anyOf": [
    {"required": ["location"]},
    {"required": ["skills"]},
    {"required": ["total_experience"]},
    {"required": ["work_experience"]},
    {"required": ["education"]},
    {"required": ["certifications"]},
    {"required": ["projects"]},
    {"required": ["interests"]}
  ]
}`

var resumeSchema = mustCompileSchema("resume.schema.json", resumeJSONSchema)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(src)); err != nil {
		panic(err)
	}
	return c.MustCompile(name)
}
