package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of the given text.
func Fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}
