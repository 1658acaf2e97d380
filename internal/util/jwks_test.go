package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWKPEMRoundTrip(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := `{"keys":[{"kid":"k1","kty":"EC","crv":"P-256","alg":"ES256","use":"sig","x":"` +
		base64.RawURLEncoding.EncodeToString(key.X.FillBytes(make([]byte, 32))) + `","y":"` +
		base64.RawURLEncoding.EncodeToString(key.Y.FillBytes(make([]byte, 32))) + `"}]}`
	set, err := DecodeJWKS(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, set.Keys, 1)

	out, err := set.Keys[0].PEM()
	require.NoError(t, err)
	pub, err := ParseECDSAPublicKey(out)
	require.NoError(t, err)
	assert.True(t, pub.Equal(&key.PublicKey))
}

func TestJWKPEMRejectsOtherKeyTypes(t *testing.T) {
	_, err := JWK{Kty: "RSA", Alg: "RS256"}.PEM()
	assert.Error(t, err)
}

func TestDecodeJWKSEmpty(t *testing.T) {
	_, err := DecodeJWKS(strings.NewReader(`{"keys":[]}`))
	assert.Error(t, err)
}
