// Package metadata models the schema of a raster table: tile geometry,
// compression and the ordered list of typed bands.
//
// The schema arrives as text, normally JSON, stored next to the tiles:
//
//	{
//	  "compression": "gzip",
//	  "crs": "EPSG:3857",
//	  "tiling": {"block_width": 256, "block_height": 256, "min_zoom": 0, "max_zoom": 14, "pixel_zoom": 14, "scheme": "quadbin"},
//	  "bands": [{"name": "band_1", "type": "uint8", "nodata": 0}]
//	}
//
// Parsing is permissive: a tile must still decode when its schema is
// partial, so missing or malformed fields take the package defaults rather
// than failing. The only hard failures are band lookups, which return
// errs.ErrBandNotFound for an out-of-range index or an unknown name.
//
// The text is parsed with sigs.k8s.io/yaml, so YAML documents are accepted
// as well as JSON.
package metadata
