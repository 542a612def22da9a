// Package pagination implements encrypted offset cursors for paged
// search results. Tokens are opaque to callers and bound to the search
// they were issued for.
package pagination

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// TokenTTL is how long an issued page token stays valid.
const TokenTTL = 24 * time.Hour

// Cursor is the decrypted payload of a page token.
type Cursor struct {
	Offset    int       `json:"offset"`
	Search    string    `json:"search,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IsExpired reports whether the cursor is older than the given duration.
func (c *Cursor) IsExpired(maxAge time.Duration) bool {
	return time.Since(c.Timestamp) > maxAge
}

// CursorEncoder encrypts cursors into opaque page tokens.
type CursorEncoder struct {
	cipher cipher.Block
}

// NewCursorEncoder creates a cursor encoder with the given AES-256 key.
func NewCursorEncoder(key []byte) (*CursorEncoder, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes for AES-256")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &CursorEncoder{cipher: block}, nil
}

func (e *CursorEncoder) aead() (cipher.AEAD, error) {
	gcm, err := cipher.NewGCM(e.cipher)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encode encrypts a cursor into a base64 page token.
func (e *CursorEncoder) Encode(cursor *Cursor) (string, error) {
	plaintext, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decode decrypts a base64 page token back into a cursor.
func (e *CursorEncoder) Decode(encoded string) (*Cursor, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	gcm, err := e.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(plaintext, &cursor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor: %w", err)
	}

	return &cursor, nil
}

// Params contains common pagination request parameters.
type Params struct {
	PageSize  int
	PageToken string
}

// Response contains pagination response metadata.
type Response struct {
	NextPageToken string
	PrevPageToken string
	TotalItems    int64
	HasMore       bool
}

// Offset resolves the starting offset for a page token. An empty token
// starts at zero. The token must carry the fingerprint of the search it
// was issued for, must not be expired, and must decrypt cleanly.
func Offset(encoder *CursorEncoder, pageToken, search string) (int, error) {
	if pageToken == "" {
		return 0, nil
	}

	cursor, err := encoder.Decode(pageToken)
	if err != nil {
		return 0, fmt.Errorf("invalid page token: %w", err)
	}

	if cursor.IsExpired(TokenTTL) {
		return 0, fmt.Errorf("page token expired")
	}

	if cursor.Search != search {
		return 0, fmt.Errorf("page token belongs to a different search")
	}

	return cursor.Offset, nil
}

// NextPageToken issues the token for the page after the current one, or
// an empty string when the current page is the last.
func NextPageToken(encoder *CursorEncoder, search string, offset, pageSize int, totalItems int64) (string, error) {
	nextOffset := offset + pageSize
	if int64(nextOffset) >= totalItems {
		return "", nil
	}

	return encoder.Encode(&Cursor{
		Offset:    nextOffset,
		Search:    search,
		Timestamp: time.Now(),
	})
}

// PrevPageToken issues the token for the page before the current one, or
// an empty string when the current page is the first.
func PrevPageToken(encoder *CursorEncoder, search string, offset, pageSize int) (string, error) {
	if offset <= 0 {
		return "", nil
	}

	prevOffset := offset - pageSize
	if prevOffset < 0 {
		prevOffset = 0
	}

	return encoder.Encode(&Cursor{
		Offset:    prevOffset,
		Search:    search,
		Timestamp: time.Now(),
	})
}
