// Package password реализует проверку нового пароля, bcrypt-хеширование
// и сравнение хеша с введённым паролем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinLength: минимальная длина пароля.
	MinLength = 8
	// MaxLength: ограничение bcrypt на длину входа в байтах.
	MaxLength = 72
)

var (
	// ErrTooShort: пароль короче MinLength.
	ErrTooShort = fmt.Errorf("password must be at least %d characters", MinLength)
	// ErrTooLong: пароль длиннее MaxLength байт.
	ErrTooLong = fmt.Errorf("password must be at most %d bytes", MaxLength)
	// ErrMismatch: пароль и подтверждение не совпадают.
	ErrMismatch = errors.New("passwords do not match")
)

// Check проверяет новый пароль и его подтверждение.
func Check(password, repeat string) error {
	if len([]rune(password)) < MinLength || len([]rune(repeat)) < MinLength {
		return ErrTooShort
	}
	if len(password) > MaxLength {
		return ErrTooLong
	}
	if password != repeat {
		return ErrMismatch
	}
	return nil
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
