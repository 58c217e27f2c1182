package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResults_NullDocument(t *testing.T) {
	results, err := decodeResults([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestDecodeResults_RejectsObject(t *testing.T) {
	_, err := decodeResults([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}

func TestEncodeResults_Empty(t *testing.T) {
	data, err := encodeResults(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
