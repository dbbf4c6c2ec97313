package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AccountNumberPrefix is the fixed prefix of every customer account number.
const AccountNumberPrefix = "AAPNA"

// AccountNumber derives the shareable account number from the assigned user
// id: the fixed prefix plus the id zero-padded to seven digits.
func AccountNumber(userID int64) string {
	return fmt.Sprintf("%s%07d", AccountNumberPrefix, userID)
}

// HashPassword hashes a password or PIN using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password or PIN matches a bcrypt hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
