package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object found in response")

// ExtractItinerary parses the text between the first '{' and the last '}' of raw.
// Text without a brace pair, or with the last '}' ahead of the first '{', is a ParseError.
// The returned JSON is compacted but otherwise exactly what the model produced.
func ExtractItinerary(raw string) (json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, newParseError(raw, errNoJSONObject)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw[start:end+1])); err != nil {
		return nil, newParseError(raw, err)
	}

	return json.RawMessage(buf.Bytes()), nil
}

func newParseError(raw string, err error) *Error {
	return &Error{
		Kind:    ParseError,
		Message: ParseFailureMessage,
		Raw:     raw,
		Err:     err,
	}
}

func isBudgetRefusal(raw string) bool {
	return strings.Contains(strings.ToLower(raw), strings.ToLower(budgetRefusal))
}
