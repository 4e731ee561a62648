package metadata

import (
	"fmt"

	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/internal/hash"
)

// Defaults applied to fields missing from the metadata text.
const (
	DefaultCompression = format.CompressionNone
	DefaultBlockWidth  = 256
	DefaultBlockHeight = 256
	DefaultMinZoom     = 0
	DefaultMaxZoom     = 26
	DefaultPixelZoom   = 0
	DefaultNumBlocks   = 0
	DefaultScheme      = "quadbin"
)

// Band describes one named, typed channel of a tile.
type Band struct {
	// Name is the band name. Names are not required to be unique.
	Name string
	// Type is the data type tag as written in the metadata, e.g. "uint8".
	Type string
	// NoData is the band's optional no-data sentinel.
	NoData format.NoData
}

// DataType resolves the band's type tag.
func (b Band) DataType() (format.DataType, error) {
	dt, ok := format.ParseDataType(b.Type)
	if !ok {
		return 0, fmt.Errorf("%w: %q (band %q)", errs.ErrUnsupportedDataType, b.Type, b.Name)
	}

	return dt, nil
}

// TileMetadata describes the schema shared by every tile of one raster table.
//
// A TileMetadata is immutable after Parse returns and safe for concurrent
// reads.
type TileMetadata struct {
	Compression format.CompressionType
	BlockWidth  int
	BlockHeight int
	MinZoom     int
	MaxZoom     int
	// PixelZoom is the native, highest-detail zoom level.
	PixelZoom int
	// NumBlocks is informational only.
	NumBlocks int
	Scheme    string
	CRS       string
	// Bands is in declaration order; the position is the band index.
	Bands []Band

	fingerprint uint64
}

// Default returns metadata with every field at its default and no bands.
func Default() *TileMetadata {
	return &TileMetadata{
		Compression: DefaultCompression,
		BlockWidth:  DefaultBlockWidth,
		BlockHeight: DefaultBlockHeight,
		MinZoom:     DefaultMinZoom,
		MaxZoom:     DefaultMaxZoom,
		PixelZoom:   DefaultPixelZoom,
		NumBlocks:   DefaultNumBlocks,
		Scheme:      DefaultScheme,
		fingerprint: hash.Fingerprint(""),
	}
}

// Fingerprint returns the xxHash64 of the text the metadata was parsed from.
//
// Two TileMetadata values with equal fingerprints were parsed from identical
// text, which lets callers reuse one parse for many tiles of the same table.
func (m *TileMetadata) Fingerprint() uint64 {
	return m.fingerprint
}

// NumBands returns the number of declared bands.
func (m *TileMetadata) NumBands() int {
	return len(m.Bands)
}

// Band returns the band at index.
func (m *TileMetadata) Band(index int) (Band, error) {
	if index < 0 || index >= len(m.Bands) {
		return Band{}, fmt.Errorf("%w: index %d out of range [0,%d)", errs.ErrBandNotFound, index, len(m.Bands))
	}

	return m.Bands[index], nil
}

// BandIndex returns the index of the first band named name.
func (m *TileMetadata) BandIndex(name string) (int, error) {
	for i := range m.Bands {
		if m.Bands[i].Name == name {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q", errs.ErrBandNotFound, name)
}

// BandType returns the data type tag of the band at index.
func (m *TileMetadata) BandType(index int) (string, error) {
	b, err := m.Band(index)
	if err != nil {
		return "", err
	}

	return b.Type, nil
}

// BandTypeByName returns the data type tag of the first band named name.
func (m *TileMetadata) BandTypeByName(name string) (string, error) {
	i, err := m.BandIndex(name)
	if err != nil {
		return "", err
	}

	return m.Bands[i].Type, nil
}

// DataType returns the resolved data type of the band at index.
//
// It fails with errs.ErrBandNotFound for an out-of-range index and with
// errs.ErrUnsupportedDataType when the band's tag is not a known type.
func (m *TileMetadata) DataType(index int) (format.DataType, error) {
	b, err := m.Band(index)
	if err != nil {
		return 0, err
	}

	return b.DataType()
}
