package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	// PasswordAlphabet omits characters that are easy to misread.
	PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

	TemporaryPasswordLength = 16

	passwordDigits = "23456789"
)

var (
	ErrInvalidLength = errors.New("length must be non-negative")
	ErrEmptyAlphabet = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}
	if length == 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}

	var builder strings.Builder
	builder.Grow(length)
	limit := big.NewInt(int64(len(alphabet)))
	for builder.Len() < length {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[position.Int64()])
	}
	return builder.String(), nil
}

// TemporaryPassword returns a random password holding at least one letter and
// one digit.
func TemporaryPassword() (string, error) {
	for {
		candidate, err := RandomString(TemporaryPasswordLength, PasswordAlphabet)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(candidate, passwordDigits) && strings.IndexFunc(candidate, isASCIILetter) >= 0 {
			return candidate, nil
		}
	}
}

func isASCIILetter(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
