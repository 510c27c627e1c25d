package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordLen = 12

	lower   = "abcdefghijkmnopqrstuvwxyz"
	upper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digits  = "23456789"
	symbols = "!@#$%^&*"
)

// TempPassword generates a one-time temporary password satisfying the pool's
// policy: one character from each class, the rest drawn from all of them.
func TempPassword() (string, error) {
	all := lower + upper + digits + symbols

	buf := make([]byte, 0, passwordLen)
	for _, class := range []string{lower, upper, digits, symbols} {
		ch, err := randChar(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	for len(buf) < passwordLen {
		ch, err := randChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}

	// shuffle so the class-guaranteed characters are not positional
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randChar(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("generate password: %w", err)
	}
	return int(v.Int64()), nil
}
