package tiers

import (
	"math"
	"math/rand"
)

// Defaults for a Clusterer.
const (
	DefaultSeed      = 42
	DefaultRestarts  = 10
	DefaultMaxIter   = 300
	DefaultTolerance = 1e-4
)

// Clusterer runs seeded k-means. A fresh random source is created from the
// seed on every call, so identical input yields identical labels.
type Clusterer struct {
	seed     int64
	restarts int
	maxIter  int
	tol      float64
}

// New returns a Clusterer with defaults overridden by opts.
func New(opts ...Option) *Clusterer {
	c := &Clusterer{
		seed:     DefaultSeed,
		restarts: DefaultRestarts,
		maxIter:  DefaultMaxIter,
		tol:      DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the best partition found over all restarts.
type Result struct {
	Labels  []int
	Inertia float64
	// Iterations is the Lloyd iteration count of the winning restart.
	Iterations int
}

// KMeans partitions points into k clusters. Every label in [0, k) is used
// when len(points) >= k. Points must share one dimension.
func (c *Clusterer) KMeans(points [][]float64, k int) Result {
	if k <= 0 || len(points) < k {
		return Result{Labels: make([]int, len(points))}
	}
	rng := rand.New(rand.NewSource(c.seed)) //nolint:gosec // reproducible clustering, not security
	tol := c.tol * meanVariance(points)

	var best Result
	for r := 0; r < c.restarts; r++ {
		centers := seedCenters(rng, points, k)
		res := c.lloyd(points, centers, tol)
		if r == 0 || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best
}

func (c *Clusterer) lloyd(points [][]float64, centers [][]float64, tol float64) Result {
	k := len(centers)
	labels := make([]int, len(points))
	iter := 0
	for iter < c.maxIter {
		iter++
		assign(points, centers, labels)
		repairEmpty(points, centers, labels, k)
		next := means(points, labels, k)
		var shift float64
		for j := range centers {
			shift += sqDist(centers[j], next[j])
		}
		centers = next
		if shift <= tol {
			break
		}
	}
	assign(points, centers, labels)
	repairEmpty(points, centers, labels, k)

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return Result{Labels: labels, Inertia: inertia, Iterations: iter}
}

// seedCenters picks k initial centers with greedy k-means++: every step
// samples 2+ln(k) candidates by squared distance and keeps the one that
// lowers the potential most.
func seedCenters(rng *rand.Rand, points [][]float64, k int) [][]float64 {
	n := len(points)
	trials := 2 + int(math.Log(float64(k)))
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.Intn(n)]))

	closest := make([]float64, n)
	for i, p := range points {
		closest[i] = sqDist(p, centers[0])
	}
	potential := sum(closest)

	for len(centers) < k {
		bestIdx, bestPot := -1, math.Inf(1)
		var bestClosest []float64
		for t := 0; t < trials; t++ {
			cand := sample(rng, closest, potential)
			next := make([]float64, n)
			for i, p := range points {
				next[i] = math.Min(closest[i], sqDist(p, points[cand]))
			}
			if pot := sum(next); pot < bestPot {
				bestIdx, bestPot, bestClosest = cand, pot, next
			}
		}
		centers = append(centers, clone(points[bestIdx]))
		closest, potential = bestClosest, bestPot
	}
	return centers
}

// sample draws an index with probability proportional to weights, or
// uniformly when every weight is zero.
func sample(rng *rand.Rand, weights []float64, total float64) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// assign labels each point with its nearest center; ties go to the lower index.
func assign(points, centers [][]float64, labels []int) {
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for j, c := range centers {
			if d := sqDist(p, c); d < bestD {
				best, bestD = j, d
			}
		}
		labels[i] = best
	}
}

// repairEmpty moves the point farthest from its center, taken from a cluster
// with more than one member, into each empty cluster.
func repairEmpty(points, centers [][]float64, labels []int, k int) {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	for j := 0; j < k; j++ {
		if counts[j] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			l := labels[i]
			if counts[l] < 2 {
				continue
			}
			if d := sqDist(p, centers[l]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		counts[labels[far]]--
		labels[far] = j
		counts[j] = 1
		centers[j] = clone(points[far])
	}
}

func means(points [][]float64, labels []int, k int) [][]float64 {
	dim := len(points[0])
	out := make([][]float64, k)
	counts := make([]int, k)
	for j := range out {
		out[j] = make([]float64, dim)
	}
	for i, p := range points {
		l := labels[i]
		counts[l]++
		for d := range p {
			out[l][d] += p[d]
		}
	}
	for j := range out {
		if counts[j] == 0 {
			continue
		}
		for d := range out[j] {
			out[j][d] /= float64(counts[j])
		}
	}
	return out
}

func meanVariance(points [][]float64) float64 {
	n := float64(len(points))
	dim := len(points[0])
	var total float64
	for d := 0; d < dim; d++ {
		var m float64
		for _, p := range points {
			m += p[d]
		}
		m /= n
		var v float64
		for _, p := range points {
			v += (p[d] - m) * (p[d] - m)
		}
		total += v / n
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
