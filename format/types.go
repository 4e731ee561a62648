package format

import "strings"

type (
	CompressionType uint8
	DataType        uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed band payload.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip (RFC 1952) compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// Token returns the lower-case identifier used for the codec in metadata text.
func (c CompressionType) Token() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	case CompressionGzip:
		return "gzip"
	default:
		return "none"
	}
}

// ParseCompressionType maps a host compression identifier to its
// CompressionType.
//
// Only the exact token "gzip" selects a codec. Anything else, including the
// empty string, "GZIP" and the names of the other codecs, is uncompressed; an
// unknown identifier never fails, it only disables decompression. Zstd, S2 and
// LZ4 bands are selected with a typed CompressionType, never by identifier.
func ParseCompressionType(s string) CompressionType {
	if s == "gzip" {
		return CompressionGzip
	}

	return CompressionNone
}

// Pixel data types. The zero value is deliberately invalid so that an
// unset DataType never decodes as uint8 by accident.
const (
	DataTypeUint8   DataType = 0x1
	DataTypeInt8    DataType = 0x2
	DataTypeUint16  DataType = 0x3
	DataTypeInt16   DataType = 0x4
	DataTypeUint32  DataType = 0x5
	DataTypeInt32   DataType = 0x6
	DataTypeUint64  DataType = 0x7
	DataTypeInt64   DataType = 0x8
	DataTypeFloat32 DataType = 0x9
	DataTypeFloat64 DataType = 0xA
)

// dataTypeTags maps accepted (lower-case) tags to data types.
var dataTypeTags = map[string]DataType{
	"uint8":   DataTypeUint8,
	"byte":    DataTypeUint8,
	"int8":    DataTypeInt8,
	"uint16":  DataTypeUint16,
	"int16":   DataTypeInt16,
	"uint32":  DataTypeUint32,
	"int32":   DataTypeInt32,
	"uint64":  DataTypeUint64,
	"int64":   DataTypeInt64,
	"float32": DataTypeFloat32,
	"float":   DataTypeFloat32,
	"float64": DataTypeFloat64,
	"double":  DataTypeFloat64,
}

// ParseDataType maps a data type tag such as "uint8" or "float32" to its DataType.
//
// Tags are matched case-insensitively. The second return value is false when
// the tag is not one of the supported pixel encodings.
func ParseDataType(tag string) (DataType, bool) {
	dt, ok := dataTypeTags[strings.ToLower(strings.TrimSpace(tag))]
	return dt, ok
}

// Valid reports whether d is one of the supported pixel encodings.
func (d DataType) Valid() bool {
	return d >= DataTypeUint8 && d <= DataTypeFloat64
}

// Size returns the width of one pixel in bytes, or 0 for an invalid DataType.
func (d DataType) Size() int {
	switch d {
	case DataTypeUint8, DataTypeInt8:
		return 1
	case DataTypeUint16, DataTypeInt16:
		return 2
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 4
	case DataTypeUint64, DataTypeInt64, DataTypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether d is an IEEE 754 floating point encoding.
func (d DataType) IsFloat() bool {
	return d == DataTypeFloat32 || d == DataTypeFloat64
}

// IsSigned reports whether d can represent negative values.
func (d DataType) IsSigned() bool {
	switch d {
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64, DataTypeFloat32, DataTypeFloat64:
		return true
	default:
		return false
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeUint8:
		return "uint8"
	case DataTypeInt8:
		return "int8"
	case DataTypeUint16:
		return "uint16"
	case DataTypeInt16:
		return "int16"
	case DataTypeUint32:
		return "uint32"
	case DataTypeInt32:
		return "int32"
	case DataTypeUint64:
		return "uint64"
	case DataTypeInt64:
		return "int64"
	case DataTypeFloat32:
		return "float32"
	case DataTypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}
