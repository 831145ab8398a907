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

// KeySize is the length of a SecretBox key in bytes
const KeySize = chacha20poly1305.KeySize

// sealedPrefix marks values produced by SealString. It is also bound as
// associated data, so a payload cannot be replayed under another version.
const sealedPrefix = "enc:v1:"

// ErrSealedWithoutKey is returned when a sealed value is read but no key
// is configured
var ErrSealedWithoutKey = errors.New("value is encrypted but no settings key is configured")

// SecretBox seals short secrets such as provider API keys with
// XChaCha20-Poly1305 before they reach local storage
type SecretBox struct {
	aead cipher.AEAD
}

// NewSecretBox creates a box for a KeySize-byte key
func NewSecretBox(key []byte) (*SecretBox, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length: %d (must be %d)", len(key), KeySize)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &SecretBox{aead: aead}, nil
}

// NewSecretBoxFromBase64 creates a box from a key as printed by EncodeKey
func NewSecretBoxFromBase64(encoded string) (*SecretBox, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	return NewSecretBox(key)
}

// GenerateKey returns a random key
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// EncodeKey renders a key in the form expected by SETTINGS_ENCRYPTION_KEY
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// SealString encrypts plaintext into a printable, prefixed value.
// The empty string stays empty so an unset key remains unset.
func (b *SecretBox) SealString(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, b.aead.NonceSize(), b.aead.NonceSize()+len(plaintext)+b.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := b.aead.Seal(nonce, nonce, []byte(plaintext), []byte(sealedPrefix))
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString. Unsealed values pass through unchanged,
// so keys saved before encryption was enabled still load.
func (b *SecretBox) OpenString(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}

	sealed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed value: %w", err)
	}
	if len(sealed) < b.aead.NonceSize() {
		return "", errors.New("sealed value too short")
	}

	nonce, ciphertext := sealed[:b.aead.NonceSize()], sealed[b.aead.NonceSize():]
	plaintext, err := b.aead.Open(nil, nonce, ciphertext, []byte(sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

// IsSealed reports whether value was produced by SealString
func IsSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
