package stats

import (
	"github.com/arloliu/raquet/band"
)

// Compute streams every pixel of d through an Accumulator, skipping pixels
// that match the layout's no-data sentinel.
//
// A band where every pixel is no-data yields Empty(), Count 0.
func Compute(d *band.Decoded) Stats {
	nodata := d.Layout().NoData

	var acc Accumulator
	for v := range d.All() {
		if nodata.Matches(v) {
			continue
		}
		acc.Add(v)
	}

	return acc.Result()
}

// ComputeBandStats decodes payload with layout and computes its statistics
// in one pass over the decompressed bytes.
//
// Errors from band.Decode are returned unchanged: errs.ErrDecompression,
// errs.ErrUnsupportedDataType and errs.ErrInvalidDimensions. An empty
// payload is not special-cased here; it fails the grid size check like any
// other short buffer, so callers that want an absent result for empty input
// must check before calling.
func ComputeBandStats(payload []byte, layout band.Layout) (Stats, error) {
	d, err := band.Decode(payload, layout)
	if err != nil {
		return Stats{}, err
	}

	return Compute(d), nil
}
