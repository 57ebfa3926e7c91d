package prime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrime(t *testing.T) {
	for _, n := range []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 97, 7919} {
		assert.True(t, IsPrime(n), "%d", n)
	}
	for _, n := range []int{-7, -1, 0, 1, 4, 6, 8, 9, 10, 15, 25, 35, 49, 121, 7917} {
		assert.False(t, IsPrime(n), "%d", n)
	}
}

func TestIsPrimeMatchesSieve(t *testing.T) {
	const limit = 1000
	composite := make([]bool, limit)
	for i := 2; i < limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	for i := 2; i < limit; i++ {
		assert.Equal(t, !composite[i], IsPrime(i), "%d", i)
	}
}
