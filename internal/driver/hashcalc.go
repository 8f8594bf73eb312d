package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"numerus/internal/source"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// cacheSchemaVersion is bumped whenever CachePayload or diagnostic wording changes.
const cacheSchemaVersion uint16 = 1

// cacheKey строит ключ: H( content || stage || options || schema ).
func cacheKey(file *source.File, opts CheckOptions) Digest {
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(opts.Stage))
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], cacheSchemaVersion)
	binary.LittleEndian.PutUint32(buf[2:6], uint32(max(opts.MaxDiagnostics, 0))) // #nosec G115 -- clamped
	if opts.ReportUnused {
		buf[6] = 1
	}
	_, _ = h.Write(buf[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
