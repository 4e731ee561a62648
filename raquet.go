// Package raquet decodes raquet raster tiles and computes band statistics.
//
// A raquet table stores raster data as rows of tiles. Each row holds one
// binary payload per band, a width x height grid of typed pixels that may be
// gzip compressed, and the table carries a metadata document describing the
// tiling and the bands. This package is the host-facing layer over the
// format, compress, encoding, metadata, band and stats packages.
//
// # Result Convention
//
// Every entry point returns a Result instead of (value, error). A Result
// whose Err is set is absent: one corrupt tile yields one null row and never
// aborts a query over thousands of tiles. An empty payload is always absent
// with errs.ErrEmptyBand, which is distinct from a valid Stats whose Count is
// 0 because every pixel was no-data.
//
// # Basic Usage
//
// Statistics with an explicit schema:
//
//	r := raquet.SummaryStats(payload, "uint16", 256, 256, "gzip", 0)
//	if s, ok := r.Get(); ok {
//	    fmt.Println(s.Mean, s.StdDev)
//	}
//
// Statistics with the schema taken from table metadata:
//
//	r := raquet.SummaryStatsFromMetadataBand(payload, metadataJSON, 2)
//
// Many rows at once, parsing each distinct metadata text once:
//
//	results, err := raquet.SummaryStatsBatch(rows,
//	    raquet.WithConcurrency(runtime.GOMAXPROCS(0)),
//	    raquet.WithErrorHandler(func(row int, err error) {
//	        log.Printf("row %d: %v", row, err)
//	    }),
//	)
//
// # Package Structure
//
// The functions here are thin wrappers. Use the band and stats packages
// directly for typed layouts, streaming iteration or merging partial stats.
package raquet

import (
	"fmt"

	"github.com/arloliu/raquet/band"
	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/metadata"
	"github.com/arloliu/raquet/stats"
)

// DefaultDataType is used for metadata without any band.
const DefaultDataType = format.DataTypeUint8

// NewLayout builds a band layout from host arguments.
//
// dataType is a tag such as "uint8" or "float32". compression is a codec
// identifier; only the exact token "gzip" selects gzip and anything else,
// including the empty string, means uncompressed. Use band.WithCompression in
// opts for the other codecs.
func NewLayout(dataType string, width, height int, compression string, opts ...band.Option) (band.Layout, error) {
	dt, ok := format.ParseDataType(dataType)
	if !ok {
		return band.Layout{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedDataType, dataType)
	}

	base := []band.Option{band.WithCompression(format.ParseCompressionType(compression))}

	return band.NewLayout(dt, width, height, append(base, opts...)...)
}

// MetadataLayout builds the layout of band bandIndex from parsed metadata.
//
// Metadata without bands is read as a single uint8 band with no sentinel,
// but only for band 0.
func MetadataLayout(meta *metadata.TileMetadata, bandIndex int) (band.Layout, error) {
	if meta.NumBands() == 0 && bandIndex == 0 {
		return band.NewLayout(DefaultDataType, meta.BlockWidth, meta.BlockHeight,
			band.WithCompression(meta.Compression))
	}

	return band.LayoutFromMetadata(meta, bandIndex)
}

// SummaryStats computes the statistics of one band, skipping pixels equal to
// nodata. A NaN nodata skips NaN pixels.
func SummaryStats(payload []byte, dataType string, width, height int, compression string, nodata float64) Result[stats.Stats] {
	return summaryStats(payload, func() (band.Layout, error) {
		return NewLayout(dataType, width, height, compression, band.WithNoData(nodata))
	})
}

// SummaryStatsNoNodata computes the statistics of one band counting every pixel.
func SummaryStatsNoNodata(payload []byte, dataType string, width, height int, compression string) Result[stats.Stats] {
	return summaryStats(payload, func() (band.Layout, error) {
		return NewLayout(dataType, width, height, compression)
	})
}

// SummaryStatsFromMetadata computes the statistics of the first band, with
// type, geometry, compression and no-data taken from metadataText.
func SummaryStatsFromMetadata(payload []byte, metadataText string) Result[stats.Stats] {
	return SummaryStatsFromMetadataBand(payload, metadataText, 0)
}

// SummaryStatsFromMetadataBand computes the statistics of band bandIndex,
// with type, geometry, compression and no-data taken from metadataText.
func SummaryStatsFromMetadataBand(payload []byte, metadataText string, bandIndex int) Result[stats.Stats] {
	if len(payload) == 0 {
		return Fail[stats.Stats](errs.ErrEmptyBand)
	}

	return summaryStatsFromMetadata(payload, metadata.Parse(metadataText), bandIndex)
}

// PixelValue returns the pixel at column x, row y of one band.
func PixelValue(payload []byte, dataType string, width, height int, compression string, x, y int) Result[float64] {
	if len(payload) == 0 {
		return Fail[float64](errs.ErrEmptyBand)
	}

	layout, err := NewLayout(dataType, width, height, compression)
	if err != nil {
		return Fail[float64](err)
	}

	return resultOf(band.DecodePixel(payload, layout, x, y))
}

// BandValues returns every pixel of one band in row-major order.
func BandValues(payload []byte, dataType string, width, height int, compression string) Result[[]float64] {
	if len(payload) == 0 {
		return Fail[[]float64](errs.ErrEmptyBand)
	}

	layout, err := NewLayout(dataType, width, height, compression)
	if err != nil {
		return Fail[[]float64](err)
	}

	return resultOf(band.DecodeBand(payload, layout))
}

func summaryStats(payload []byte, layoutFn func() (band.Layout, error)) Result[stats.Stats] {
	// empty input is absent, not a zero-pixel summary
	if len(payload) == 0 {
		return Fail[stats.Stats](errs.ErrEmptyBand)
	}

	layout, err := layoutFn()
	if err != nil {
		return Fail[stats.Stats](err)
	}

	return resultOf(stats.ComputeBandStats(payload, layout))
}

func summaryStatsFromMetadata(payload []byte, meta *metadata.TileMetadata, bandIndex int) Result[stats.Stats] {
	return summaryStats(payload, func() (band.Layout, error) {
		return MetadataLayout(meta, bandIndex)
	})
}
