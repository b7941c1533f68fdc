package internal

// Scatter counts the ways to spread n indistinguishable units of slack over
// m ordered gaps, each gap taking zero or more. That is C(n+m-1, m-1).
//
// A Scatter memoizes every (n, m) it has seen. It is meant to live for the
// resolution of a single row and is not safe for concurrent use.
type Scatter struct {
	memoized map[[2]int]int
}

func NewScatter() *Scatter {
	return &Scatter{memoized: make(map[[2]int]int)}
}

// Count returns the number of weak compositions of n into m parts.
//
// m must be at least 1.
func (s *Scatter) Count(n, m int) int {
	if n == 0 || m == 1 {
		return 1
	}
	if m < 1 {
		panic("m < 1 -- a slack distribution needs at least one gap")
	}

	key := [2]int{n, m}
	if memo, ok := s.memoized[key]; ok {
		return memo
	}

	// The first gap takes t units, the remaining m-1 gaps share the rest.
	total := 0
	for t := 0; t <= n; t++ {
		total += s.Count(n-t, m-1)
	}
	s.memoized[key] = total
	return total
}

// Len returns the number of memoized entries.
func (s *Scatter) Len() int {
	return len(s.memoized)
}
