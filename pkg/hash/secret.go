package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// SecretHasher digests shared secrets so they can be compared in constant time.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Equal(secret string, digest string) bool
}

// SHA256Hasher uses SHA256 with a salt.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

func (h *SHA256Hasher) Hash(secret string) (string, error) {
	hash := sha256.New()

	if _, err := hash.Write([]byte(h.salt + secret)); err != nil {
		return "", err
	}

	//nolint:perfsprint
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// Equal reports whether secret hashes to digest.
func (h *SHA256Hasher) Equal(secret string, digest string) bool {
	got, err := h.Hash(secret)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}
