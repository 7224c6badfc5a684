package users

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the cost factor for bcrypt password hashing
const BcryptCost = 12

// HashPassword derives the stored credential for a plaintext password.
// The result is salted, so two calls with the same input produce
// different hashes that both verify.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored credential.
func VerifyPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
