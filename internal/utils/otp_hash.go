package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashOTP hashes a one-time passcode with bcrypt at the given cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashOTP(code string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	return string(hash), err
}

// CheckOTPHash compares a submitted code with a stored hash. The comparison is exact:
// no trimming and no case folding.
func CheckOTPHash(code, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
