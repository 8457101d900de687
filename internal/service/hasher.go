package service

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashSecret derives a salted bcrypt hash from a plaintext password.
func HashSecret(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret reports whether plaintext matches the stored hash. Any
// mismatch or malformed hash yields false; a wrong password is never an
// error. The bcrypt comparison is constant-time, hashes are never compared
// with ==.
func CheckSecret(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
