package security_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/security"
)

func newBox(t *testing.T) *security.SecretBox {
	t.Helper()
	box, err := security.NewSecretBox(bytes.Repeat([]byte{7}, security.KeySize))
	require.NoError(t, err)
	return box
}

func TestSecretBox_RoundTrip(t *testing.T) {
	box := newBox(t)

	for _, secret := range []string{
		"x",
		"sk-proj-0123456789abcdefghijklmnopqrstuvwxyz",
		"AIzaSy-密钥-키",
	} {
		sealed, err := box.SealString(secret)
		require.NoError(t, err)
		assert.True(t, security.IsSealed(sealed))
		assert.NotContains(t, sealed, secret)

		opened, err := box.OpenString(sealed)
		require.NoError(t, err)
		assert.Equal(t, secret, opened)
	}
}

func TestSecretBox_EmptyStaysEmpty(t *testing.T) {
	sealed, err := newBox(t).SealString("")
	require.NoError(t, err)
	assert.Empty(t, sealed)
}

func TestSecretBox_PlainPassthrough(t *testing.T) {
	opened, err := newBox(t).OpenString("sk-plain")
	require.NoError(t, err)
	assert.Equal(t, "sk-plain", opened)
}

func TestSecretBox_RandomNonce(t *testing.T) {
	box := newBox(t)
	a, _ := box.SealString("same")
	b, _ := box.SealString("same")
	assert.NotEqual(t, a, b)
}

func TestSecretBox_Tampered(t *testing.T) {
	box := newBox(t)
	sealed, err := box.SealString("sk-secret")
	require.NoError(t, err)

	other, err := security.GenerateKey()
	require.NoError(t, err)
	otherBox, err := security.NewSecretBox(other)
	require.NoError(t, err)

	_, err = otherBox.OpenString(sealed)
	assert.Error(t, err)

	// change one character inside the nonce
	i := len("enc:v1:") + 5
	flipped := byte('A')
	if sealed[i] == 'A' {
		flipped = 'B'
	}
	_, err = box.OpenString(sealed[:i] + string(flipped) + sealed[i+1:])
	assert.Error(t, err)

	_, err = box.OpenString("enc:v1:%%%")
	assert.Error(t, err)
	_, err = box.OpenString("enc:v1:AAAA")
	assert.Error(t, err)
}

func TestNewSecretBox_KeyLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33} {
		_, err := security.NewSecretBox(make([]byte, n))
		assert.Error(t, err, "length %d", n)
	}
}

func TestNewSecretBoxFromBase64(t *testing.T) {
	key, err := security.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, security.KeySize)

	box, err := security.NewSecretBoxFromBase64(" " + security.EncodeKey(key) + "\n")
	require.NoError(t, err)

	sealed, err := box.SealString("k")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "enc:v1:"))

	_, err = security.NewSecretBoxFromBase64("not base64!")
	assert.Error(t, err)
	_, err = security.NewSecretBoxFromBase64(security.EncodeKey(key[:16]))
	assert.Error(t, err)
}
