package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost используется по умолчанию при регистрации пользователей.
const BcryptCost = 12

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = BcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
