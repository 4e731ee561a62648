// Package encoding converts between typed pixel bytes and widened float64 values.
//
// A decompressed band is a row-major grid of fixed-width pixels of one
// format.DataType. PixelDecoder reads one pixel (At) or streams every pixel
// (All), widening each value to float64 so downstream code never branches on
// the pixel type. PixelEncoder and AppendValues perform the reverse, narrowing
// values into a band payload.
//
//	dec, err := encoding.NewPixelDecoder(format.DataTypeUint16, endian.GetLittleEndianEngine())
//	if err != nil {
//	    return err // errs.ErrUnsupportedDataType
//	}
//	for v := range dec.All(raw, width*height) {
//	    ...
//	}
//
// Widening is exact for every type except uint64 and int64 values beyond
// 2^53, which round to the nearest float64.
//
// Decoders are immutable values and safe for concurrent use. Encoders own a
// buffer and must not be shared between goroutines.
package encoding
