package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrShapeMismatch: la respuesta llegó pero no tiene la forma
// { "success": true, "<collection>": [ {...}, ... ] }.
var ErrShapeMismatch = errors.New("payload shape mismatch")

func DecodeCourses(raw []byte) ([]Course, error) {
	return decodeEnvelope[Course](raw, CollectionCourses)
}

func DecodeAnnouncements(raw []byte) ([]Announcement, error) {
	return decodeEnvelope[Announcement](raw, CollectionAnnouncements)
}

func DecodeEvents(raw []byte) ([]Event, error) {
	return decodeEnvelope[Event](raw, CollectionEvents)
}

// Envelope arma la respuesta en el formato del backend del campus.
// La usan los adapters que no hablan HTTP (memory, postgres).
func Envelope(c Collection, items any) ([]byte, error) {
	if items == nil {
		items = []any{}
	}
	return json.Marshal(map[string]any{
		"success":  true,
		string(c): items,
	})
}

func decodeEnvelope[T any](raw []byte, c Collection) ([]T, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, shapeErr(c, "invalid json: %v", err)
	}

	var success bool
	if err := json.Unmarshal(env["success"], &success); err != nil || !success {
		return nil, shapeErr(c, "success is not true")
	}

	field, ok := env[string(c)]
	if !ok || isNull(field) {
		return nil, shapeErr(c, "missing %q field", c)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, shapeErr(c, "%q is not an array", c)
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, shapeErr(c, "item %d is not an object", i)
		}

		var rec T
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			return nil, shapeErr(c, "item %d: %v", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func shapeErr(c Collection, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrShapeMismatch, c, fmt.Sprintf(format, args...))
}
