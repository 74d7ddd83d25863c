package lock

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKeyIntegerPassthrough(t *testing.T) {
	assert.Equal(t, int64(42), EncodeKey(42))
	assert.Equal(t, int64(42), EncodeKey(int64(42)))
	assert.Equal(t, int64(-7), EncodeKey(int32(-7)))
	assert.Equal(t, int64(255), EncodeKey(uint8(255)))
	assert.Equal(t, int64(math.MaxInt64), EncodeKey(int64(math.MaxInt64)))
}

func TestEncodeKeyUnsignedWraps(t *testing.T) {
	// Values above the signed range wrap via two's complement instead of
	// erroring.
	assert.Equal(t, int64(-1), EncodeKey(uint64(math.MaxUint64)))
	assert.Equal(t, int64(math.MinInt64), EncodeKey(uint64(math.MaxInt64)+1))
}

func TestEncodeKeyStringVectors(t *testing.T) {
	// Known SHA-1 reductions. Clients in other languages that reduce keys
	// the same way contend for the same server-side locks.
	assert.Equal(t, int64(4237802323695616234), EncodeKey("test-key"))
	assert.Equal(t, int64(6244564482426806728), EncodeKey("migrations"))
	assert.Equal(t, int64(-6725253745254088798), EncodeKey("k1"))
}

func TestEncodeKeyDeterministic(t *testing.T) {
	keys := []interface{}{
		"some-key",
		[]byte("raw-bytes"),
		3.14,
		struct{ A, B int }{1, 2},
		errors.New("an error key"),
	}
	for _, key := range keys {
		assert.Equal(t, EncodeKey(key), EncodeKey(key), "key %v must encode stably", key)
	}
}

func TestEncodeKeyStringAndBytesAgree(t *testing.T) {
	assert.Equal(t, EncodeKey("alpha"), EncodeKey([]byte("alpha")))
}

type namedKey struct {
	name string
}

func (n namedKey) String() string { return n.name }

func TestEncodeKeyStringerUsesTextualForm(t *testing.T) {
	assert.Equal(t, EncodeKey("resource-9"), EncodeKey(namedKey{name: "resource-9"}))
}

func TestEncodeKeyDistinctKeysDiffer(t *testing.T) {
	assert.NotEqual(t, EncodeKey("k1"), EncodeKey("k2"))
}

func TestEncodeKeyPairSplitsInteger(t *testing.T) {
	hi, lo := EncodeKeyPair(int64(0x0000000100000002))
	assert.Equal(t, int32(1), hi)
	assert.Equal(t, int32(2), lo)

	hi, lo = EncodeKeyPair(int64(-1))
	assert.Equal(t, int32(-1), hi)
	assert.Equal(t, int32(-1), lo)
}

func TestEncodeKeyPairMatchesEncodeKey(t *testing.T) {
	for _, key := range []interface{}{"test-key", "migrations", 77, uint64(math.MaxUint64)} {
		id := EncodeKey(key)
		hi, lo := EncodeKeyPair(key)
		recombined := int64(hi)<<32 | int64(uint32(lo))
		assert.Equal(t, id, recombined, "pair for %v must recombine to the id", key)
	}
}

func ExampleEncodeKey() {
	fmt.Println(EncodeKey(42))
	fmt.Println(EncodeKey("migrations"))
	// Output:
	// 42
	// 6244564482426806728
}
