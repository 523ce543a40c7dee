package validatex

import (
	"encoding/json"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// malformedBody is the single message returned when the body is not valid JSON.
const malformedBody = "Invalid request body."

// ValidateBody validates a raw request body against a draft-4 style JSON
// schema document. A body that fails to decode yields the single malformed-
// body message and the schema is not evaluated. Violation messages are
// rendered as "<field>: <description>" and sorted lexicographically so the
// same request always produces the same error list.
//
// The returned error reports an unusable schema document, not body failures.
func ValidateBody(body []byte, schema map[string]any) ([]string, error) {
	var document any
	if err := json.Unmarshal(body, &document); err != nil {
		return []string{malformedBody}, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, ValidatorErrors.NewWithCause(ErrSchemaInvalid, err)
	}
	if result.Valid() {
		return nil, nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		messages = append(messages, violation.String())
	}
	sort.Strings(messages)
	return messages, nil
}
