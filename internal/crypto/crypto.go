// package crypto provides a simple interface to common cryptographic primitives.
package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// MinSecretBytes is the smallest secret Secret will generate, 256 bits.
const MinSecretBytes = 32

// Keypair represents a VAPID public/private keypair, each half encoded as
// unpadded base64url, the form push services and clients exchange.
type Keypair struct {
	PublicKey  string
	PrivateKey string
}

// GenerateVAPIDKeypair generates a new P-256 keypair for signing Web Push
// requests.
func GenerateVAPIDKeypair() (*Keypair, error) {
	priv, pub, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return nil, err
	}
	return &Keypair{
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// ParseVAPIDPublicKey decodes a base64url encoded P-256 public key in
// uncompressed form.
func ParseVAPIDPublicKey(s string) (*ecdh.PublicKey, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return ecdh.P256().NewPublicKey(b)
}

// Secret returns n random bytes encoded as unpadded base64url.
// n must be at least MinSecretBytes.
func Secret(n int) (string, error) {
	if n < MinSecretBytes {
		return "", fmt.Errorf("crypto: secret of %d bytes is below the %d byte minimum", n, MinSecretBytes)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
