package models

import (
	"crypto/rand"
	"math/big"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a random 9-character base36 identifier. Record ids are
// opaque and stable once assigned; clients may also supply their own.
func NewID() string {
	b := make([]byte, 9)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure is not recoverable here
			panic(err)
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b)
}
