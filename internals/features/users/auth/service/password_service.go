package service

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

func HashPassword(plain string) (string, error) {
	if err := ValidatePassword(plain); err != nil {
		return "", err
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// ValidatePassword: minimal 8 karakter, ada huruf dan angka.
func ValidatePassword(p string) error {
	if len(p) < MinPasswordLen {
		return errors.New("password minimal 8 karakter")
	}
	var letter, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}
