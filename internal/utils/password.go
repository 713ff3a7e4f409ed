package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// HashPassword hashes a raw password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// CheckPassword compares a raw password against a stored bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
