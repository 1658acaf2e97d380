package util

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// JWKS is a JSON Web Key Set as served by Supabase Auth.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK is one EC signing key.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	Alg string `json:"alg"`
	Use string `json:"use"`
}

// DecodeJWKS reads a key set from r.
func DecodeJWKS(r io.Reader) (*JWKS, error) {
	var set JWKS
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("parse JWKS: %w", err)
	}
	if len(set.Keys) == 0 {
		return nil, errors.New("no keys found in JWKS")
	}
	return &set, nil
}

// PEM encodes an ES256 key as a PKIX public key block, the form
// AuthMiddleware accepts as key material.
func (k JWK) PEM() (string, error) {
	if k.Kty != "EC" || k.Alg != "ES256" {
		return "", fmt.Errorf("expected EC/ES256 key, got %s/%s", k.Kty, k.Alg)
	}
	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return "", fmt.Errorf("decode x coordinate: %w", err)
	}
	y, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return "", fmt.Errorf("decode y coordinate: %w", err)
	}
	pub := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
