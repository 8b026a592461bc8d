package fifotax

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object with a fixed field order.
// Its zero value is ready to use. The first error is kept and returned by
// MarshalJSON, every later call is a no-op.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// field appends key with the JSON encoding of value.
func (w *jsonObjectWriter) field(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(&w.buf, "%q:", key)
	w.buf.Write(raw)
	w.buf.WriteByte(',')
	return w
}

// optional appends key only if value is neither a zero value nor an empty
// slice or map.
func (w *jsonObjectWriter) optional(key string, value any) *jsonObjectWriter {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.Len() == 0 {
		return w
	}
	return w.field(key, value)
}

// embed merges the fields of the JSON object encoding v.
func (w *jsonObjectWriter) embed(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal for embedding: %w", err)
		return w
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		w.err = fmt.Errorf("cannot embed %T: not a JSON object", v)
		return w
	}
	if inner := raw[1 : len(raw)-1]; len(inner) > 0 {
		w.buf.Write(inner)
		w.buf.WriteByte(',')
	}
	return w
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.buf.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')
	return final, nil
}
