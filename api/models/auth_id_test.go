package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	original := ID(1234)

	encoded, err := json.Marshal(original)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "1234")

	var decoded ID
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestIDZeroMarshalsAsNull(t *testing.T) {
	encoded, err := json.Marshal(ID(0))
	require.NoError(t, err)
	assert.Equal(t, "null", string(encoded))
}

func TestIDScan(t *testing.T) {
	var id ID
	require.NoError(t, id.Scan(int64(88)))
	assert.Equal(t, ID(88), id)

	require.NoError(t, id.Scan(nil))
	assert.Equal(t, ID(0), id)
}
