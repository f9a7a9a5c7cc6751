package uid

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsIncreasing(t *testing.T) {
	require.NoError(t, Init(3))

	first := Generate()
	second := Generate()
	assert.Greater(t, second, first)
}

func TestParse(t *testing.T) {
	require.NoError(t, Init(3))
	id := Generate()

	parsed, err := Parse(strconv.FormatInt(id, 10))
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}
