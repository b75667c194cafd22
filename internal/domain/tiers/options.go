package tiers

// Option configures a Clusterer.
type Option func(*Clusterer)

// WithSeed sets the random seed shared by all restarts.
func WithSeed(seed int64) Option {
	return func(c *Clusterer) {
		c.seed = seed
	}
}

// WithRestarts sets how many independent initializations are tried.
func WithRestarts(n int) Option {
	return func(c *Clusterer) {
		if n > 0 {
			c.restarts = n
		}
	}
}

// WithMaxIter bounds the Lloyd iterations of one restart.
func WithMaxIter(n int) Option {
	return func(c *Clusterer) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithTolerance sets the relative convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(c *Clusterer) {
		if tol >= 0 {
			c.tol = tol
		}
	}
}
