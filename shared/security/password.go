package security

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/matthewhartstonge/argon2"
)

// HashPassword derives an encoded argon2id hash from a plaintext password.
// Only the encoded hash is ever stored.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()

	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword checks a plaintext password against an encoded argon2 hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// RandomPassword returns a random plaintext password. Used for accounts
// created through an external identity provider, where no password is ever
// supplied or usable.
func RandomPassword() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
