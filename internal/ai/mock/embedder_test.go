package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVector(t *testing.T) {
	a := DeterministicVector("golang backend engineer", 16)
	b := DeterministicVector("golang backend engineer", 16)
	c := DeterministicVector("pastry chef", 16)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestEmbedderDefaults(t *testing.T) {
	e := &Embedder{}

	v, err := e.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, 16)

	vs, err := e.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.NotEqual(t, vs[0], vs[1])
	assert.Equal(t, 2, e.CallCount)
}
