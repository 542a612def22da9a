package etag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinothek/kinothek/pkg/errors"
)

func TestParse(t *testing.T) {
	t.Run("valid tokens", func(t *testing.T) {
		cases := map[string]int{
			`"0"`:    0,
			`"1"`:    1,
			`"3"`:    3,
			`"42"`:   42,
			`"1000"`: 1000,
		}
		for raw, want := range cases {
			got, err := Parse(raw)
			require.NoError(t, err, "token %s", raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, raw := range []string{`"0"`, `"7"`, `"12"`, `"900"`} {
			version, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, Format(version))
		}
	})

	t.Run("malformed tokens", func(t *testing.T) {
		malformed := []string{
			"",      // empty
			`""`,    // no digits
			`"-1"`,  // negative
			`"abc"`, // not numeric
			"3",     // unquoted
			`"3`,    // missing closing quote
			`3"`,    // missing opening quote
			`"007"`, // leading zeros
			`"+3"`,  // explicit sign
			`" 3"`,  // whitespace
		}
		for _, raw := range malformed {
			_, err := Parse(raw)
			require.Error(t, err, "token %q", raw)
			assert.True(t, errors.IsInvalidVersion(err), "token %q", raw)
		}
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, `"0"`, Format(0))
	assert.Equal(t, `"12"`, Format(12))
	assert.Equal(t, `"3"`, Format(3))
}
