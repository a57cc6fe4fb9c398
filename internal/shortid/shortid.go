// Package shortid generates the short tokens used as public link keys.
package shortid

import (
	"crypto/rand"
	"math/big"
)

const (
	// Length is the number of characters in a generated token.
	Length = 6

	alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generate returns a Length-character token drawn uniformly from the
// alphanumeric alphabet. Uniqueness is not guaranteed at this layer;
// callers that need an unused token must check against their store.
func Generate() (string, error) {
	result := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		randomIndex, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = alphabet[randomIndex.Int64()]
	}

	return string(result), nil
}
