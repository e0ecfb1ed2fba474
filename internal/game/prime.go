package game

// IsPrime reports whether n is prime by trial division. 1 is not prime;
// 2 and 3 are. No sqrt bound or sieve on purpose: candidates stay small
// because the round range only grows by one per completed round, and the
// naive scan keeps the judgment identical to the rules shown to the
// player.
func IsPrime(n int) bool {
	if n == 1 {
		return false
	}
	if n < 4 {
		return true
	}
	for i := 2; i < n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
