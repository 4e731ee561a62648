// Package stats computes single-pass descriptive statistics over band pixels.
//
// Statistics are count, sum, mean, min, max and the population standard
// deviation. Values are folded one at a time with Welford's algorithm, so
// memory use beyond the decompressed band is constant.
//
//	s, err := stats.ComputeBandStats(payload, layout)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Mean, s.StdDev)
//
// Partial results from tiles processed in parallel combine exactly with
// Merge; Count and Sum are exposed for hosts that reduce results
// themselves.
//
// A summary of zero pixels, for example a tile where every pixel is
// no-data, has Count 0, Sum 0 and NaN for every other field.
package stats
