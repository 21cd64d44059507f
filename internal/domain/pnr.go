package domain

import (
	"crypto/rand"
	"math/big"
)

// pnrAlphabet is case-insensitive alphanumeric; 36^6 gives roughly 2.2e9
// combinations. Uniqueness is still enforced by the database index, with
// regenerate-and-retry on collision.
const pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PNRLength is the length of generated booking reference codes.
const PNRLength = 6

// NewPNR generates a random booking reference code.
func NewPNR() (string, error) {
	max := big.NewInt(int64(len(pnrAlphabet)))
	buf := make([]byte, PNRLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = pnrAlphabet[n.Int64()]
	}
	return string(buf), nil
}
