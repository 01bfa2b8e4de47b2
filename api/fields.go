package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"hermannm.dev/wrap"
)

// A JSON object of field key to value that remembers key order. The first key of a row's
// dimensions and metrics drives the chart axes, so order from the server must be preserved.
type Fields struct {
	keys   []string
	values map[string]any
}

type Entry struct {
	Key   string
	Value any
}

func NewFields(entries ...Entry) Fields {
	var fields Fields
	for _, entry := range entries {
		fields.Set(entry.Key, entry.Value)
	}
	return fields
}

// Keys in insertion order. The returned slice must not be modified.
func (fields Fields) Keys() []string {
	return fields.keys
}

func (fields Fields) Get(key string) (value any, ok bool) {
	value, ok = fields.values[key]
	return value, ok
}

func (fields Fields) Len() int {
	return len(fields.keys)
}

// Sets the value for the key. A new key is appended; an existing key keeps its position.
func (fields *Fields) Set(key string, value any) {
	if fields.values == nil {
		fields.values = make(map[string]any)
	}
	if _, exists := fields.values[key]; !exists {
		fields.keys = append(fields.keys, key)
	}
	fields.values[key] = value
}

func (fields Fields) Entries() []Entry {
	entries := make([]Entry, 0, len(fields.keys))
	for _, key := range fields.keys {
		entries = append(entries, Entry{Key: key, Value: fields.values[key]})
	}
	return entries
}

func (fields Fields) Clone() Fields {
	return Fields{keys: slices.Clone(fields.keys), values: cloneMap(fields.values)}
}

func cloneMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	clone := make(map[string]any, len(values))
	for key, value := range values {
		clone[key] = value
	}
	return clone
}

func (fields *Fields) UnmarshalJSON(bytes []byte) error {
	if !gjson.ValidBytes(bytes) {
		return errors.New("invalid JSON in field mapping")
	}

	result := gjson.ParseBytes(bytes)
	*fields = Fields{}

	if result.Type == gjson.Null {
		return nil
	}
	if !result.IsObject() {
		return fmt.Errorf("expected JSON object for field mapping, got '%s'", result.Raw)
	}

	result.ForEach(func(key gjson.Result, value gjson.Result) bool {
		fields.Set(key.String(), value.Value())
		return true
	})
	return nil
}

func (fields Fields) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	for i, key := range fields.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, wrap.Errorf(err, "failed to encode field key '%s'", key)
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')

		encodedValue, err := json.Marshal(fields.values[key])
		if err != nil {
			return nil, wrap.Errorf(err, "failed to encode value of field '%s'", key)
		}
		buffer.Write(encodedValue)
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
