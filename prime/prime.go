/*
Package prime implements the primality test used to validate grid cell sizes.
*/
package prime

// IsPrime reports whether n is prime. It uses trial division up to the square
// root of n, skipping every candidate that is a multiple of 2 or 3.
func IsPrime(n int) bool {
	switch {
	case n <= 1:
		return false
	case n <= 3:
		return true
	case n%2 == 0 || n%3 == 0:
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
