package stats

import (
	"fmt"
	"math"
)

// Stats summarizes the valid (non-no-data) pixels of one or more bands.
//
// When Count is 0, Sum is 0 and Mean, Min, Max and StdDev are NaN.
type Stats struct {
	Count int64
	Sum   float64
	Mean  float64
	Min   float64
	Max   float64
	// StdDev is the population standard deviation, sqrt(M2/Count).
	StdDev float64
}

// Empty returns the summary of zero pixels.
func Empty() Stats {
	nan := math.NaN()
	return Stats{Mean: nan, Min: nan, Max: nan, StdDev: nan}
}

// IsEmpty reports whether no pixel was counted.
func (s Stats) IsEmpty() bool {
	return s.Count == 0
}

// Variance returns the population variance.
func (s Stats) Variance() float64 {
	return s.StdDev * s.StdDev
}

func (s Stats) String() string {
	return fmt.Sprintf("count=%d sum=%g mean=%g min=%g max=%g stddev=%g",
		s.Count, s.Sum, s.Mean, s.Min, s.Max, s.StdDev)
}

// Accumulator folds values into running statistics in a single pass using
// Welford's update, so no value needs to be retained.
//
// The zero value is an empty accumulator ready for use.
//
// Note: The Accumulator is NOT thread-safe. Use one accumulator per
// goroutine and combine the results with Merge.
type Accumulator struct {
	count int64
	sum   float64
	mean  float64
	m2    float64
	min   float64
	max   float64
}

// Add folds v into the accumulator.
func (a *Accumulator) Add(v float64) {
	a.count++
	a.sum += v

	delta := v - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (v - a.mean)

	if a.count == 1 {
		a.min, a.max = v, v
		return
	}

	a.min = min(a.min, v)
	a.max = max(a.max, v)
}

// Count returns the number of values added so far.
func (a *Accumulator) Count() int64 {
	return a.count
}

// Reset empties the accumulator.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Result returns the statistics of the values added so far. It does not
// modify the accumulator.
func (a *Accumulator) Result() Stats {
	if a.count == 0 {
		return Empty()
	}

	return Stats{
		Count:  a.count,
		Sum:    a.sum,
		Mean:   a.mean,
		Min:    a.min,
		Max:    a.max,
		StdDev: math.Sqrt(a.m2 / float64(a.count)),
	}
}

// Merge combines the summaries of disjoint pixel sets into the summary of
// their union, as if every pixel had gone through one Accumulator.
//
// Mean and StdDev are combined with the pairwise update of Chan et al. from
// the Count, Mean and StdDev of each part. Empty parts are ignored. The
// result can differ from a single pass in the last bits of Mean and StdDev.
func Merge(parts ...Stats) Stats {
	var acc Stats
	var m2 float64

	for _, p := range parts {
		if p.Count <= 0 {
			continue
		}

		if acc.Count == 0 {
			acc = p
			m2 = p.Variance() * float64(p.Count)
			continue
		}

		n := float64(acc.Count + p.Count)
		delta := p.Mean - acc.Mean
		m2 += p.Variance()*float64(p.Count) + delta*delta*float64(acc.Count)*float64(p.Count)/n

		acc.Mean += delta * float64(p.Count) / n
		acc.Sum += p.Sum
		acc.Count += p.Count
		acc.Min = min(acc.Min, p.Min)
		acc.Max = max(acc.Max, p.Max)
	}

	if acc.Count == 0 {
		return Empty()
	}

	acc.StdDev = math.Sqrt(m2 / float64(acc.Count))

	return acc
}
