package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for access code hashes
const BcryptCost = 12

// HashAccessCode hashes a shared access code for the auth.access_code_hash setting
func HashAccessCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckAccessCode reports whether code matches the bcrypt hash
func CheckAccessCode(hashed, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code)) == nil
}
