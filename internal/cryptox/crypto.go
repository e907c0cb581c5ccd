// Package cryptox holds the server's small cryptographic helpers: password
// verifiers and sealing of third-party tokens at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"golang.org/x/crypto/argon2"
)

const keyLen = 32

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// DeriveKey stretches secret with argon2id into a 256-bit key.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keyLen)
}

// MakeVerifier returns the value stored for a password: argon2id(password, salt).
func MakeVerifier(password, salt []byte) []byte {
	return DeriveKey(password, salt)
}

// CheckVerifier reports whether password hashes to verifier under salt.
// The comparison runs in constant time.
func CheckVerifier(verifier, password, salt []byte) bool {
	candidate := MakeVerifier(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}

// Sealer encrypts short strings (OAuth access and refresh tokens) with
// AES-256-GCM. Output is base64(nonce || ciphertext).
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(secret, salt []byte) (*Sealer, error) {
	key := DeriveKey(secret, salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	ns := s.aead.NonceSize()
	if len(raw) < ns {
		return "", ErrMalformedCiphertext
	}
	plain, err := s.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
