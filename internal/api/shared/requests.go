package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse across handlers.
var validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are rejected
// so malformed or unexpected-shape input fails early instead of being
// silently dropped.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ValidateRequest validates v using its struct validation tags.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
