package raquet

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/raquet/band"
	"github.com/arloliu/raquet/encoding"
	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/stats"
)

const twoBandMetadata = `{
  "compression": "gzip",
  "tiling": {"block_width": 2, "block_height": 2},
  "bands": [
    {"name": "b1", "type": "uint8"},
    {"name": "b2", "type": "int16", "nodata": -1}
  ]
}`

func gzipTile[T encoding.Number](t *testing.T, dt format.DataType, values []T, width, height int) []byte {
	t.Helper()

	layout, err := band.NewLayout(dt, width, height, band.WithCompression(format.CompressionGzip))
	require.NoError(t, err)

	payload, err := band.EncodeValues(values, layout)
	require.NoError(t, err)

	return payload
}

// TestSummaryStats verifies the explicit-schema entry point on a 2x2 uint8 tile
func TestSummaryStats(t *testing.T) {
	raw := []byte{10, 20, 30, 40}

	s, ok := SummaryStatsNoNodata(raw, "uint8", 2, 2, "none").Get()
	require.True(t, ok)
	require.Equal(t, int64(4), s.Count)
	require.Equal(t, 100.0, s.Sum)
	require.Equal(t, 25.0, s.Mean)
	require.Equal(t, 10.0, s.Min)
	require.Equal(t, 40.0, s.Max)
	require.InDelta(t, math.Sqrt(125), s.StdDev, 1e-12)

	s, ok = SummaryStats(raw, "uint8", 2, 2, "", 40).Get()
	require.True(t, ok)
	require.Equal(t, int64(3), s.Count)
	require.Equal(t, 60.0, s.Sum)
	require.Equal(t, 20.0, s.Mean)
	require.Equal(t, 30.0, s.Max)
	require.InDelta(t, math.Sqrt(200.0/3.0), s.StdDev, 1e-12)
}

// TestSummaryStats_Gzip verifies the "gzip" identifier enables decompression
func TestSummaryStats_Gzip(t *testing.T) {
	payload := gzipTile(t, format.DataTypeUint8, []uint8{10, 20, 30, 40}, 2, 2)

	s, err := SummaryStatsNoNodata(payload, "uint8", 2, 2, "gzip").Unwrap()
	require.NoError(t, err)
	require.Equal(t, 25.0, s.Mean)

	// read as uncompressed, the gzip header bytes are taken as pixels
	r := SummaryStatsNoNodata(payload, "uint8", 2, 2, "none")
	require.True(t, r.Valid())
	require.Equal(t, float64(0x8b), r.Value.Max)
}

// TestSummaryStats_OnlyExactGzipDecompresses verifies other identifiers read raw pixels
func TestSummaryStats_OnlyExactGzipDecompresses(t *testing.T) {
	raw := []byte{10, 20, 30, 40}

	for _, tok := range []string{"GZIP", "Gzip", "zstd", "s2", "lz4", "deflate", "none", ""} {
		t.Run(tok, func(t *testing.T) {
			s, err := SummaryStatsNoNodata(raw, "uint8", 2, 2, tok).Unwrap()
			require.NoError(t, err)
			require.Equal(t, int64(4), s.Count)
			require.Equal(t, 100.0, s.Sum)
		})
	}

	meta := `{"compression": "zstd", "tiling": {"block_width": 2, "block_height": 2}, "bands": [{"name": "b", "type": "uint8"}]}`
	s, err := SummaryStatsFromMetadata(raw, meta).Unwrap()
	require.NoError(t, err)
	require.Equal(t, 100.0, s.Sum)
}

// TestSummaryStats_EmptyIsAbsent verifies empty input is absent, not a zeroed record
func TestSummaryStats_EmptyIsAbsent(t *testing.T) {
	results := []Result[stats.Stats]{
		SummaryStats(nil, "uint8", 2, 2, "none", 0),
		SummaryStatsNoNodata([]byte{}, "uint8", 2, 2, "gzip"),
		SummaryStatsFromMetadata(nil, twoBandMetadata),
		SummaryStatsFromMetadataBand([]byte{}, twoBandMetadata, 1),
	}

	for _, r := range results {
		require.False(t, r.Valid())
		require.ErrorIs(t, r.Err, errs.ErrEmptyBand)
		require.Equal(t, stats.Stats{}, r.Value)
	}
}

// TestSummaryStats_AllNoDataIsValid verifies a zero-count summary is a value, not absent
func TestSummaryStats_AllNoDataIsValid(t *testing.T) {
	r := SummaryStats([]byte{7, 7, 7, 7}, "uint8", 2, 2, "none", 7)
	require.True(t, r.Valid())
	require.Equal(t, int64(0), r.Value.Count)
	require.True(t, math.IsNaN(r.Value.Mean))
}

// TestSummaryStats_Errors verifies each failure kind maps to an absent result
func TestSummaryStats_Errors(t *testing.T) {
	tests := []struct {
		name string
		r    Result[stats.Stats]
		err  error
	}{
		{name: "unknown type", r: SummaryStatsNoNodata([]byte{1}, "complex", 1, 1, "none"), err: errs.ErrUnsupportedDataType},
		{name: "short buffer", r: SummaryStatsNoNodata([]byte{1, 2, 3}, "uint8", 2, 2, "none"), err: errs.ErrInvalidDimensions},
		{name: "zero width", r: SummaryStatsNoNodata([]byte{1}, "uint8", 0, 2, "none"), err: errs.ErrInvalidDimensions},
		{name: "corrupt gzip", r: SummaryStatsNoNodata([]byte{0x1f, 0x8b, 1, 2, 3}, "uint8", 2, 2, "gzip"), err: errs.ErrDecompression},
		{name: "negative band", r: SummaryStatsFromMetadataBand([]byte{1}, twoBandMetadata, -1), err: errs.ErrBandNotFound},
		{name: "band past end", r: SummaryStatsFromMetadataBand([]byte{1}, twoBandMetadata, 2), err: errs.ErrBandNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, tt.r.Valid())
			require.ErrorIs(t, tt.r.Err, tt.err)

			_, ok := tt.r.Get()
			require.False(t, ok)
		})
	}
}

// TestOverflowingDimensionsAreInvalid verifies huge grids fail instead of summarizing nothing
func TestOverflowingDimensionsAreInvalid(t *testing.T) {
	r := SummaryStats([]byte{1, 2, 3}, "uint8", math.MaxInt/2+1, 4, "", 0)
	require.ErrorIs(t, r.Err, errs.ErrInvalidDimensions)

	v := PixelValue([]byte{7}, "float64", math.MaxInt32, math.MaxInt32, "", 5, 5)
	require.ErrorIs(t, v.Err, errs.ErrInvalidDimensions)

	b := BandValues([]byte{7}, "float64", math.MaxInt32, math.MaxInt32, "")
	require.ErrorIs(t, b.Err, errs.ErrInvalidDimensions)

	metas := []string{
		`{"tiling": {"block_width": 2147483647, "block_height": 2147483647}, "bands": [{"name": "b", "type": "float64"}]}`,
		`{"tiling": {"block_width": "4294967296", "block_height": "4294967296"}, "bands": [{"name": "b", "type": "float64"}]}`,
	}
	for _, meta := range metas {
		r := SummaryStatsFromMetadata([]byte{1}, meta)
		require.False(t, r.Valid(), meta)
		require.ErrorIs(t, r.Err, errs.ErrInvalidDimensions, meta)
	}
}

// TestSummaryStatsFromMetadata verifies schema, compression and nodata come from metadata
func TestSummaryStatsFromMetadata(t *testing.T) {
	b1 := gzipTile(t, format.DataTypeUint8, []uint8{1, 2, 3, 4}, 2, 2)
	b2 := gzipTile(t, format.DataTypeInt16, []int16{-1, -5, 5, -1}, 2, 2)

	s, ok := SummaryStatsFromMetadata(b1, twoBandMetadata).Get()
	require.True(t, ok)
	require.Equal(t, int64(4), s.Count)
	require.Equal(t, 2.5, s.Mean)

	s, ok = SummaryStatsFromMetadataBand(b2, twoBandMetadata, 1).Get()
	require.True(t, ok)
	require.Equal(t, int64(2), s.Count, "-1 is the band's nodata")
	require.Equal(t, 0.0, s.Mean)
	require.Equal(t, -5.0, s.Min)
	require.Equal(t, 5.0, s.Max)
}

// TestSummaryStatsFromMetadata_NoBands verifies band 0 defaults to uint8 without band entries
func TestSummaryStatsFromMetadata_NoBands(t *testing.T) {
	payload := make([]byte, 256*256)
	for i := range payload {
		payload[i] = byte(i % 2)
	}

	s, ok := SummaryStatsFromMetadata(payload, `{"compression": "none"}`).Get()
	require.True(t, ok)
	require.Equal(t, int64(256*256), s.Count)
	require.InDelta(t, 0.5, s.Mean, 1e-12)
	require.InDelta(t, 0.5, s.StdDev, 1e-9)

	r := SummaryStatsFromMetadataBand(payload, `{}`, 1)
	require.ErrorIs(t, r.Err, errs.ErrBandNotFound)
}

// TestPixelValue verifies row-major point reads
func TestPixelValue(t *testing.T) {
	payload := gzipTile(t, format.DataTypeFloat32, []float32{0, 1.5, 2.5, 3.5, 4.5, 5.5}, 3, 2)

	v, ok := PixelValue(payload, "float32", 3, 2, "gzip", 1, 1).Get()
	require.True(t, ok)
	require.Equal(t, 4.5, v)

	r := PixelValue(payload, "float32", 3, 2, "gzip", 3, 0)
	require.ErrorIs(t, r.Err, errs.ErrPixelOutOfBounds)

	r = PixelValue(nil, "float32", 3, 2, "gzip", 0, 0)
	require.ErrorIs(t, r.Err, errs.ErrEmptyBand)

	r = PixelValue(payload, "float16", 3, 2, "gzip", 0, 0)
	require.ErrorIs(t, r.Err, errs.ErrUnsupportedDataType)
}

// TestBandValues verifies bulk reads for every data type tag
func TestBandValues(t *testing.T) {
	for _, tag := range []string{"uint8", "int8", "uint16", "int16", "uint32", "int32", "uint64", "int64", "float32", "float64"} {
		t.Run(tag, func(t *testing.T) {
			dt, ok := format.ParseDataType(tag)
			require.True(t, ok)

			payload := gzipTile(t, dt, []int{1, 2, 3, 4, 5, 6}, 2, 3)

			values, ok := BandValues(payload, tag, 2, 3, "gzip").Get()
			require.True(t, ok)
			require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, values)
		})
	}

	r := BandValues(nil, "uint8", 1, 1, "none")
	require.ErrorIs(t, r.Err, errs.ErrEmptyBand)
	require.Nil(t, r.Value)
}

// TestNewLayout verifies tag and identifier parsing
func TestNewLayout(t *testing.T) {
	l, err := NewLayout("Float64", 8, 4, "deflate", band.WithBigEndian())
	require.NoError(t, err)
	require.Equal(t, format.DataTypeFloat64, l.DataType)
	require.Equal(t, format.CompressionNone, l.Compression)

	_, err = NewLayout("rgb", 8, 4, "none")
	require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
}

// TestSummaryStatsBatch verifies one bad row does not affect the others
func TestSummaryStatsBatch(t *testing.T) {
	good := gzipTile(t, format.DataTypeUint8, []uint8{10, 20, 30, 40}, 2, 2)

	rows := []StatsRow{
		{Band: good, Metadata: twoBandMetadata},
		{Band: nil, Metadata: twoBandMetadata},
		{Band: []byte("corrupt"), Metadata: twoBandMetadata},
		{Band: good, Metadata: twoBandMetadata, BandIndex: 5},
		{Band: []byte{10, 20, 30, 40}, Metadata: `{"tiling": {"block_width": 2, "block_height": 2}, "bands": [{"name": "x", "type": "uint8"}]}`},
	}

	for _, workers := range []int{1, 4} {
		var failed []int
		results, err := SummaryStatsBatch(rows,
			WithConcurrency(workers),
			WithErrorHandler(func(row int, err error) {
				require.Error(t, err)
				failed = append(failed, row)
			}),
		)
		require.NoError(t, err)
		require.Len(t, results, len(rows))

		require.True(t, results[0].Valid())
		require.Equal(t, 25.0, results[0].Value.Mean)
		require.ErrorIs(t, results[1].Err, errs.ErrEmptyBand)
		require.ErrorIs(t, results[2].Err, errs.ErrDecompression)
		require.ErrorIs(t, results[3].Err, errs.ErrBandNotFound)
		require.True(t, results[4].Valid())
		require.Equal(t, results[0].Value, results[4].Value)

		require.Equal(t, []int{1, 2, 3}, failed)
	}
}

// TestSummaryStatsBatch_Concurrent verifies parallel rows equal sequential rows
func TestSummaryStatsBatch_Concurrent(t *testing.T) {
	rows := make([]StatsRow, 200)
	for i := range rows {
		vals := make([]uint8, 4)
		for j := range vals {
			vals[j] = uint8((i*7 + j*13) % 256)
		}
		rows[i] = StatsRow{Band: gzipTile(t, format.DataTypeUint8, vals, 2, 2), Metadata: twoBandMetadata}
	}

	sequential, err := SummaryStatsBatch(rows)
	require.NoError(t, err)

	parallel, err := SummaryStatsBatch(rows, WithConcurrency(8))
	require.NoError(t, err)

	require.Equal(t, sequential, parallel)

	var parts []stats.Stats
	for _, r := range parallel {
		require.True(t, r.Valid())
		parts = append(parts, r.Value)
	}
	require.Equal(t, int64(800), stats.Merge(parts...).Count)
}

// TestSummaryStatsBatch_InvalidOption verifies option errors are returned
func TestSummaryStatsBatch_InvalidOption(t *testing.T) {
	results, err := SummaryStatsBatch(nil, WithConcurrency(0))
	require.Error(t, err)
	require.Nil(t, results)

	results, err = SummaryStatsBatch(nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

// TestParseDistinct verifies identical metadata text is parsed once per call
func TestParseDistinct(t *testing.T) {
	rows := []StatsRow{
		{Metadata: twoBandMetadata},
		{Metadata: `{}`},
		{Metadata: twoBandMetadata},
	}

	metas := parseDistinct(rows)
	require.Len(t, metas, 3)
	require.Same(t, metas[0], metas[2])
	require.NotSame(t, metas[0], metas[1])
	require.Equal(t, 2, metas[0].NumBands())
}

// TestResult verifies the value-or-error helpers
func TestResult(t *testing.T) {
	ok := Ok(3)
	v, present := ok.Get()
	require.True(t, present)
	require.Equal(t, 3, v)

	boom := errors.New("boom")
	bad := Fail[int](boom)
	require.False(t, bad.Valid())
	_, err := bad.Unwrap()
	require.ErrorIs(t, err, boom)

	require.Equal(t, ok, resultOf(3, nil))
	require.Equal(t, bad, resultOf(0, boom))
}
