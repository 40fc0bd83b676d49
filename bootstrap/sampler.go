package bootstrap

// sampler draws from the historical pool with the stationary bootstrap
// scheme: a uniformly random starting index, then at each step either a
// sequential advance (probability p, wrapping at the pool end) or a jump
// to a fresh uniform index. Block lengths are geometric with mean
// 1/(1-p), preserving local serial dependence.
type sampler struct {
	pool    []float64
	p       float64
	rng     Rand
	idx     int
	started bool
}

func newSampler(pool []float64, p float64, rng Rand) *sampler {
	return &sampler{pool: pool, p: p, rng: rng}
}

func (s *sampler) next() float64 {
	n := len(s.pool)
	if n == 0 {
		return 0
	}
	switch {
	case !s.started:
		s.idx = s.rng.IntN(n)
		s.started = true
	case s.rng.Float64() < s.p:
		s.idx = (s.idx + 1) % n
	default:
		s.idx = s.rng.IntN(n)
	}
	return s.pool[s.idx]
}

// reset starts a fresh path; the next draw picks a new random index.
func (s *sampler) reset() {
	s.started = false
}
