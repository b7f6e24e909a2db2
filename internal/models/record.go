package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SequenceField is the server-side row counter, never displayed
const SequenceField = "s_no"

// Field is one name/value pair of a record
type Field struct {
	Name  string
	Value any // string, json.Number, bool, nil, or a compact JSON string for nested values
}

// Record represents one row returned by the students API.
// Fields keep the key order of the JSON object they were decoded from.
type Record struct {
	Fields []Field
}

// Get returns the value of the named field
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Text returns the display text of the named field, empty when absent or null
func (r Record) Text(name string) string {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// UnmarshalJSON decodes a JSON object, preserving key order
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	fields := make([]Field, 0, 16)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		value, err := scalarValue(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}

		// Duplicate keys keep their first position and the last value
		if i, dup := index[name]; dup {
			fields[i].Value = value
			continue
		}
		index[name] = len(fields)
		fields = append(fields, Field{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	r.Fields = fields
	return nil
}

// MarshalJSON encodes the record as a JSON object in field order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value []byte
		if n, ok := f.Value.(json.Number); ok {
			value = []byte(n.String())
		} else if value, err = json.Marshal(f.Value); err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func scalarValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '{', '[':
		// Nested values are shown as compact JSON
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
