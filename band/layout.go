package band

import (
	"fmt"
	"math"

	"github.com/arloliu/raquet/endian"
	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/internal/options"
	"github.com/arloliu/raquet/metadata"
)

// Layout describes how one tile band is stored: pixel type, grid size,
// compression, no-data sentinel and byte order.
//
// A Layout is a small value; copy it freely.
type Layout struct {
	engine      endian.EndianEngine
	NoData      format.NoData
	Width       int
	Height      int
	DataType    format.DataType
	Compression format.CompressionType
}

// Option configures a Layout.
type Option = options.Option[*Layout]

// NewLayout creates a layout for a width x height band of type dt.
//
// By default the band is uncompressed, little-endian and has no no-data
// sentinel.
//
// Returns an error wrapping errs.ErrInvalidDimensions for a non-positive
// width or height, errs.ErrUnsupportedDataType for an invalid dt, or the
// first error returned by an option.
func NewLayout(dt format.DataType, width, height int, opts ...Option) (Layout, error) {
	l := Layout{
		engine:      endian.GetLittleEndianEngine(),
		Width:       width,
		Height:      height,
		DataType:    dt,
		Compression: format.CompressionNone,
	}

	if err := options.Apply(&l, opts...); err != nil {
		return Layout{}, err
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}

	return l, nil
}

// LayoutFromMetadata derives the layout of band index from meta: the band's
// type and no-data sentinel, the table's block size and compression.
//
// Options are applied after the metadata, so they override it.
func LayoutFromMetadata(meta *metadata.TileMetadata, index int, opts ...Option) (Layout, error) {
	b, err := meta.Band(index)
	if err != nil {
		return Layout{}, err
	}

	dt, err := b.DataType()
	if err != nil {
		return Layout{}, err
	}

	base := []Option{WithCompression(meta.Compression)}
	if b.NoData.Valid {
		base = append(base, WithNoData(b.NoData.Value))
	}

	return NewLayout(dt, meta.BlockWidth, meta.BlockHeight, append(base, opts...)...)
}

// Validate checks the dimensions and the data type, and that the raw band
// size width*height*pixel size is representable.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, l.Width, l.Height)
	}

	if !l.DataType.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, l.DataType)
	}

	// RawSize must fit in an int
	if l.Width > math.MaxInt/l.Height/l.DataType.Size() {
		return fmt.Errorf("%w: %dx%d %s overflows the band size", errs.ErrInvalidDimensions, l.Width, l.Height, l.DataType)
	}

	return nil
}

// Pixels returns width * height.
func (l Layout) Pixels() int {
	return l.Width * l.Height
}

// RawSize returns the size in bytes of the uncompressed band.
func (l Layout) RawSize() int {
	return l.Pixels() * l.DataType.Size()
}

// ByteOrder returns the byte order of multi-byte pixels.
func (l Layout) ByteOrder() endian.EndianEngine {
	if l.engine == nil {
		return endian.GetLittleEndianEngine()
	}

	return l.engine
}

func (l Layout) String() string {
	return fmt.Sprintf("%s %dx%d compression=%s endian=%s", l.DataType, l.Width, l.Height,
		l.Compression.Token(), endian.Name(l.ByteOrder()))
}

// WithByteOrder sets the byte order of multi-byte pixels.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New(func(l *Layout) error {
		if engine == nil {
			return fmt.Errorf("band: nil byte order")
		}
		l.engine = engine

		return nil
	})
}

// WithLittleEndian configures the layout to use little-endian pixels (the default).
func WithLittleEndian() Option {
	return options.NoError(func(l *Layout) {
		l.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian configures the layout to use big-endian pixels.
func WithBigEndian() Option {
	return options.NoError(func(l *Layout) {
		l.engine = endian.GetBigEndianEngine()
	})
}

// WithNoData sets the no-data sentinel. v may be NaN.
func WithNoData(v float64) Option {
	return options.NoError(func(l *Layout) {
		l.NoData = format.NoDataValue(v)
	})
}

// WithoutNoData clears any no-data sentinel, including one taken from metadata.
func WithoutNoData() Option {
	return options.NoError(func(l *Layout) {
		l.NoData = format.NoData{}
	})
}

// WithCompression sets the band compression.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(l *Layout) error {
		switch ct {
		case format.CompressionNone, format.CompressionGzip, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			l.Compression = ct
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, ct)
		}
	})
}
