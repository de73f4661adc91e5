package security

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidCiphertext = errors.New("invalid token ciphertext")

// TokenCipher seals third-party access tokens before they reach the database.
// Output format: base64url(nonce || ciphertext).
type TokenCipher struct {
	aead cipher.AEAD
}

func NewTokenCipher(key []byte) (*TokenCipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("token key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &TokenCipher{aead: aead}, nil
}

// NewTokenCipherFromBase64 decodes a standard base64 key, as stored in TOKEN_ENCRYPTION_KEY.
func NewTokenCipherFromBase64(encoded string) (*TokenCipher, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("TOKEN_ENCRYPTION_KEY is not configured")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode TOKEN_ENCRYPTION_KEY: %w", err)
	}
	return NewTokenCipher(key)
}

func (tc *TokenCipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, tc.aead.NonceSize(), tc.aead.NonceSize()+len(plaintext)+tc.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := tc.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (tc *TokenCipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	ns := tc.aead.NonceSize()
	if len(raw) < ns+tc.aead.Overhead() {
		return "", ErrInvalidCiphertext
	}
	plain, err := tc.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plain), nil
}
