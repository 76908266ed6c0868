package outscraper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvelopeError reports the nesting level at which a result payload stopped
// matching the expected [[{place}]] shape.
type EnvelopeError struct {
	Path   string
	Reason string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("outscraper: result %s %s", e.Path, e.Reason)
}

// UnwrapPlace extracts the first place from a result envelope. The data field
// is a list of query results, each a list of places. Every level is checked;
// a wrong container type or an empty container fails at that level.
func UnwrapPlace(data json.RawMessage) (*Place, error) {
	outer, err := expectArray(data, "data")
	if err != nil {
		return nil, err
	}

	inner, err := expectArray(outer[0], "data[0]")
	if err != nil {
		return nil, err
	}

	if kind := jsonKind(inner[0]); kind != "object" {
		return nil, &EnvelopeError{Path: "data[0][0]", Reason: fmt.Sprintf("is %s, want object", kind)}
	}

	var place Place
	if err := json.Unmarshal(inner[0], &place); err != nil {
		return nil, &EnvelopeError{Path: "data[0][0]", Reason: "does not decode as a place: " + err.Error()}
	}
	return &place, nil
}

func expectArray(raw json.RawMessage, path string) ([]json.RawMessage, error) {
	if kind := jsonKind(raw); kind != "array" {
		return nil, &EnvelopeError{Path: path, Reason: fmt.Sprintf("is %s, want array", kind)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &EnvelopeError{Path: path, Reason: "does not decode as an array: " + err.Error()}
	}
	if len(items) == 0 {
		return nil, &EnvelopeError{Path: path, Reason: "is empty"}
	}
	return items, nil
}

// jsonKind names the JSON type of raw by its first significant byte.
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "missing"
	}
	switch trimmed[0] {
	case '[':
		return "array"
	case '{':
		return "object"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
