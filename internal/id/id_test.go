package id

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesAndSorts(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	_, err = ulid.Parse(b)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "same-millisecond IDs stay monotonic")
}
