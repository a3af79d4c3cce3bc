// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateJSON validates payload against a JSON schema document. payload may
// be a struct, a map, or pre-marshaled []byte.
func ValidateJSON(schemaJSON string, payload interface{}) (*ValidationResult, error) {
	var docLoader gojsonschema.JSONLoader
	switch p := payload.(type) {
	case []byte:
		docLoader = gojsonschema.NewBytesLoader(p)
	case string:
		docLoader = gojsonschema.NewStringLoader(p)
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		docLoader = gojsonschema.NewBytesLoader(data)
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}

// FirstError renders the first validation failure as a single message.
func (r *ValidationResult) FirstError() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s", r.Errors[0].Field, r.Errors[0].Message)
}
