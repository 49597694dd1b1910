package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password with bcrypt. The returned string embeds the
// salt and cost factor, so verification needs nothing besides the hash itself.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed stored hash is treated as a mismatch, never an error.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
