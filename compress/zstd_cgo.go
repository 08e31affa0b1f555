//go:build nobuild

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses a row payload via cgo zstd. Disabled by the `nobuild`
// tag until a build explicitly opts into the cgo dependency in place of the
// pure-Go implementation in zstd_pure.go.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress restores a zstd-compressed row payload via cgo zstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
