package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var passwordCost = bcrypt.DefaultCost

// SetPasswordCost changes the bcrypt cost used by HashPassword. Values
// outside bcrypt's range are ignored.
func SetPasswordCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		passwordCost = cost
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
