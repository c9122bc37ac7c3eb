package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode returns a uniformly distributed decimal code in the
// closed range [min, max], rendered without padding.
//
// With min=100000 and max=999999 the result is always six digits long.
func GenerateNumericCode(min, max int64) (string, error) {
	if max < min {
		return "", fmt.Errorf("invalid code range [%d, %d]", min, max)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+min), nil
}
