package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/querybuilder/api"
)

func TestFieldsKeepServerOrder(t *testing.T) {
	var fields api.Fields
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": "x", "m": null, "b": true}`), &fields))

	assert.Equal(t, []string{"z", "a", "m", "b"}, fields.Keys())
	assert.Equal(t, 4, fields.Len())

	value, ok := fields.Get("z")
	assert.True(t, ok)
	assert.Equal(t, 1.0, value)

	_, ok = fields.Get("missing")
	assert.False(t, ok)

	encoded, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":null,"b":true}`, string(encoded))
}

func TestFieldsDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var fields api.Fields
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &fields))

	assert.Equal(t, []string{"a", "b"}, fields.Keys())
	value, _ := fields.Get("a")
	assert.Equal(t, 3.0, value)
}

func TestFieldsRejectNonObject(t *testing.T) {
	var fields api.Fields
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &fields))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &fields))
	assert.Zero(t, fields.Len())
}

func TestNewFields(t *testing.T) {
	fields := api.NewFields(api.Entry{Key: "b", Value: 1}, api.Entry{Key: "a", Value: 2})
	clone := fields.Clone()
	clone.Set("c", 3)

	assert.Equal(t, []string{"b", "a"}, fields.Keys())
	assert.Equal(t, []string{"b", "a", "c"}, clone.Keys())
	assert.Equal(t, []api.Entry{{Key: "b", Value: 1}, {Key: "a", Value: 2}}, fields.Entries())
}
