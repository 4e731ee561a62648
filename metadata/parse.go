package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/internal/hash"
)

// Parse builds a TileMetadata from JSON (or YAML) metadata text.
//
// Parse never fails. Missing fields take their defaults, fields of the wrong
// kind fall back to their defaults, and text that is not an object at all
// yields Default(). Use ParseStrict to detect unparseable text.
func Parse(text string) *TileMetadata {
	meta, _ := ParseStrict(text)
	return meta
}

// ParseStrict is Parse that also reports text that is not a JSON or YAML
// object, with an error wrapping errs.ErrMalformedMetadata.
//
// The returned metadata is always non-nil and usable, holding the defaults
// when an error is returned. Only the document syntax is checked; individual
// fields are still defaulted permissively.
func ParseStrict(text string) (*TileMetadata, error) {
	meta := Default()
	meta.fingerprint = hash.Fingerprint(text)

	if strings.TrimSpace(text) == "" {
		return meta, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return meta, fmt.Errorf("%w: %w", errs.ErrMalformedMetadata, err)
	}

	meta.apply(doc)

	return meta, nil
}

func (m *TileMetadata) apply(doc map[string]any) {
	if tok, ok := doc["compression"].(string); ok {
		m.Compression = format.ParseCompressionType(tok)
	}
	m.CRS = stringField(doc, "crs", "")

	if tiling, ok := doc["tiling"].(map[string]any); ok {
		m.MinZoom = intField(tiling, "min_zoom", DefaultMinZoom)
		m.MaxZoom = intField(tiling, "max_zoom", DefaultMaxZoom)
		m.PixelZoom = intField(tiling, "pixel_zoom", DefaultPixelZoom)
		m.NumBlocks = intField(tiling, "num_blocks", DefaultNumBlocks)
		m.BlockWidth = intField(tiling, "block_width", DefaultBlockWidth)
		m.BlockHeight = intField(tiling, "block_height", DefaultBlockHeight)
		m.Scheme = stringField(tiling, "scheme", DefaultScheme)
	} else {
		// pre-tiling layout: geometry lives at the top level
		m.MinZoom = intField(doc, "minresolution", DefaultMinZoom)
		m.MaxZoom = intField(doc, "maxresolution", DefaultMaxZoom)
		m.BlockWidth = intField(doc, "block_width", DefaultBlockWidth)
		m.BlockHeight = intField(doc, "block_height", DefaultBlockHeight)
		m.NumBlocks = intField(doc, "num_blocks", DefaultNumBlocks)
	}

	m.Bands = parseBands(doc["bands"])
}

func parseBands(v any) []Band {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	bands := make([]Band, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		b := Band{
			Name:   stringField(obj, "name", ""),
			Type:   stringField(obj, "type", ""),
			NoData: noDataField(obj["nodata"]),
		}
		if b.Name == "" || b.Type == "" {
			continue
		}

		bands = append(bands, b)
	}

	return bands
}

// stringField returns obj[key] when it is a non-empty string.
func stringField(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}

	return def
}

// intField returns obj[key] as an int. Numbers are truncated toward zero and
// numeric strings are accepted; anything else yields def.
func intField(obj map[string]any, key string, def int) int {
	switch v := obj[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
			return def
		}
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return int(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
			f <= math.MaxInt32 && f >= math.MinInt32 {
			return int(f)
		}
		return def
	default:
		return def
	}
}

// noDataField reads a per-band no-data value: a number, a numeric string, or
// "nan". null, a missing key, and anything unparseable mean no sentinel.
func noDataField(v any) format.NoData {
	switch n := v.(type) {
	case float64:
		return format.NoDataValue(n)
	case int:
		return format.NoDataValue(float64(n))
	case int64:
		return format.NoDataValue(float64(n))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return format.NoData{}
		}
		return format.NoDataValue(f)
	default:
		return format.NoData{}
	}
}
