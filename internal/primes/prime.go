package primes

// IsPrime reports whether num is prime using trial division by candidates
// of the form 6k±1 up to √num.
func IsPrime(num uint64) bool {
	if num <= 1 {
		return false
	}
	if num <= 3 {
		return true
	}
	if num%2 == 0 || num%3 == 0 {
		return false
	}
	// i <= num/i is i*i <= num without the overflow near 2^64.
	for i := uint64(5); i <= num/i; i += 6 {
		if num%i == 0 || num%(i+2) == 0 {
			return false
		}
	}
	return true
}
