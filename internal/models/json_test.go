package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONTextValue(t *testing.T) {
	t.Run("empty writes SQL NULL", func(t *testing.T) {
		v, err := JSONText(nil).Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("content passes through as a string", func(t *testing.T) {
		v, err := JSONText(`{"a":1}`).Value()
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, v)
	})
}

func TestJSONTextScan(t *testing.T) {
	var j JSONText
	require.NoError(t, j.Scan([]byte(`{"title":"SRE"}`)))
	assert.Equal(t, `{"title":"SRE"}`, string(j))

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))
}

func TestStringListRoundTrip(t *testing.T) {
	v, err := StringList{"berlin", "remote"}.Value()
	require.NoError(t, err)

	var got StringList
	require.NoError(t, got.Scan(v))
	assert.Equal(t, StringList{"berlin", "remote"}, got)

	var empty StringList
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
