package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewCursorEncoder(t *testing.T) {
	t.Run("accepts 32 byte key", func(t *testing.T) {
		enc, err := NewCursorEncoder(testKey())
		require.NoError(t, err)
		assert.NotNil(t, enc)
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := NewCursorEncoder([]byte("too-short"))
		assert.Error(t, err)
	})
}

func TestEncodeDecode(t *testing.T) {
	enc, err := NewCursorEncoder(testKey())
	require.NoError(t, err)

	original := &Cursor{
		Offset:    40,
		Search:    "genre=action",
		Timestamp: time.Now().Truncate(time.Second),
	}

	token, err := enc.Encode(original)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := enc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, original.Offset, decoded.Offset)
	assert.Equal(t, original.Search, decoded.Search)
	assert.True(t, original.Timestamp.Equal(decoded.Timestamp))
}

func TestDecodeRejectsBadTokens(t *testing.T) {
	enc, err := NewCursorEncoder(testKey())
	require.NoError(t, err)

	t.Run("garbage input", func(t *testing.T) {
		_, err := enc.Decode("not-a-token")
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		token, err := enc.Encode(&Cursor{Offset: 10, Timestamp: time.Now()})
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "AAAA"
		_, err = enc.Decode(tampered)
		assert.Error(t, err)
	})

	t.Run("token from a different key", func(t *testing.T) {
		other, err := NewCursorEncoder([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)

		token, err := other.Encode(&Cursor{Offset: 10, Timestamp: time.Now()})
		require.NoError(t, err)

		_, err = enc.Decode(token)
		assert.Error(t, err)
	})
}

func TestOffset(t *testing.T) {
	enc, err := NewCursorEncoder(testKey())
	require.NoError(t, err)

	t.Run("empty token starts at zero", func(t *testing.T) {
		offset, err := Offset(enc, "", "genre=action")
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
	})

	t.Run("valid token resolves its offset", func(t *testing.T) {
		token, err := enc.Encode(&Cursor{Offset: 60, Search: "genre=action", Timestamp: time.Now()})
		require.NoError(t, err)

		offset, err := Offset(enc, token, "genre=action")
		require.NoError(t, err)
		assert.Equal(t, 60, offset)
	})

	t.Run("rejects token from a different search", func(t *testing.T) {
		token, err := enc.Encode(&Cursor{Offset: 60, Search: "genre=action", Timestamp: time.Now()})
		require.NoError(t, err)

		_, err = Offset(enc, token, "genre=horror")
		assert.ErrorContains(t, err, "different search")
	})

	t.Run("rejects expired token", func(t *testing.T) {
		stale := &Cursor{
			Offset:    60,
			Search:    "genre=action",
			Timestamp: time.Now().Add(-TokenTTL - time.Hour),
		}
		token, err := enc.Encode(stale)
		require.NoError(t, err)

		_, err = Offset(enc, token, "genre=action")
		assert.ErrorContains(t, err, "expired")
	})
}

func TestNextPageToken(t *testing.T) {
	enc, err := NewCursorEncoder(testKey())
	require.NoError(t, err)

	t.Run("issues token while items remain", func(t *testing.T) {
		token, err := NextPageToken(enc, "q", 0, 20, 50)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		cursor, err := enc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, 20, cursor.Offset)
		assert.Equal(t, "q", cursor.Search)
	})

	t.Run("empty on the last page", func(t *testing.T) {
		token, err := NextPageToken(enc, "q", 40, 20, 50)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestPrevPageToken(t *testing.T) {
	enc, err := NewCursorEncoder(testKey())
	require.NoError(t, err)

	t.Run("empty on the first page", func(t *testing.T) {
		token, err := PrevPageToken(enc, "q", 0, 20)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("steps back one page", func(t *testing.T) {
		token, err := PrevPageToken(enc, "q", 40, 20)
		require.NoError(t, err)

		cursor, err := enc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, 20, cursor.Offset)
	})

	t.Run("clamps to zero", func(t *testing.T) {
		token, err := PrevPageToken(enc, "q", 10, 20)
		require.NoError(t, err)

		cursor, err := enc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, 0, cursor.Offset)
	})
}
