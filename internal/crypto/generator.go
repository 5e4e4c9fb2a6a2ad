package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Initial passwords are read aloud or copied by clinic staff, so look-alike
// characters (0/O, 1/l/I) are left out.
const (
	initialUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	initialLower   = "abcdefghijkmnpqrstuvwxyz"
	initialDigits  = "23456789"
	initialSymbols = "!@#$%&*?"

	InitialPasswordLength    = 14
	MinInitialPasswordLength = 8
)

var ErrPasswordTooShort = errors.New("initial password length must be at least 8")

// GenerateInitialPassword returns a random password containing at least one
// character of every class.
func GenerateInitialPassword(length int) (string, error) {
	if length < MinInitialPasswordLength {
		return "", ErrPasswordTooShort
	}

	classes := []string{initialUpper, initialLower, initialDigits, initialSymbols}
	pool := initialUpper + initialLower + initialDigits + initialSymbols

	out := make([]byte, length)
	for i := range out {
		charset := pool
		if i < len(classes) {
			charset = classes[i]
		}
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}

	if err := secureShuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle is a Fisher-Yates shuffle driven by crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
