package lock

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// EncodeKey maps an arbitrary lock key to the signed 64-bit id the
// single-argument advisory lock functions take.
//
// Integer keys pass through unchanged; unsigned values outside the signed
// range wrap via two's complement rather than erroring. Every other value is
// serialized to a canonical byte form and reduced with SHA-1, taking the
// first 8 digest bytes big-endian and signed. The encoding is a pure
// function of the key's value, with no process-specific salt, so the same
// key yields the same id in every process contending for it, including
// clients in other languages that reduce keys the same way.
func EncodeKey(key interface{}) int64 {
	switch k := key.(type) {
	case int64:
		return k
	case int:
		return int64(k)
	case int32:
		return int64(k)
	case int16:
		return int64(k)
	case int8:
		return int64(k)
	case uint64:
		return int64(k)
	case uint:
		return int64(uint64(k))
	case uint32:
		return int64(k)
	case uint16:
		return int64(k)
	case uint8:
		return int64(k)
	}
	return hashKeyBytes(canonicalKeyBytes(key))
}

// EncodeKeyPair maps a lock key to the (int32, int32) pair the two-argument
// advisory lock functions take. Integer keys split into their high and low
// 32-bit halves; hashed keys take digest bytes 0..3 and 4..7.
//
// The Lock itself uses the single-argument function family; this encoding is
// exported for callers interoperating with applications that key their
// advisory locks over the two-int32 variants.
func EncodeKeyPair(key interface{}) (int32, int32) {
	id := EncodeKey(key)
	return int32(id >> 32), int32(id)
}

// canonicalKeyBytes serializes a non-integer key to a stable byte
// representation. Types with an explicit textual form use it directly;
// everything else falls back to fmt's value formatting, which is stable for
// comparable values of the same type.
func canonicalKeyBytes(key interface{}) []byte {
	switch k := key.(type) {
	case string:
		return []byte(k)
	case []byte:
		return k
	case fmt.Stringer:
		return []byte(k.String())
	case error:
		return []byte(k.Error())
	}
	return []byte(fmt.Sprintf("%v", key))
}

func hashKeyBytes(b []byte) int64 {
	sum := sha1.Sum(b)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
