package store

import (
	"encoding/binary"
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/tferdous17/tango/utils"
)

// BloomFilter answers "definitely absent" for keys of one tree. Removing a key
// leaves its bits set, so a filter only ever errs towards "maybe".
type BloomFilter struct {
	bitSetSize uint64
	bitSet     []bool
	hashCount  uint64
}

const p = 0.01 // False positive probability

// FilterParams sizes a filter for numElements keys at the target false
// positive rate.
func FilterParams(numElements uint32) (bitSetSize, hashCount uint64) {
	if numElements == 0 {
		numElements = 1
	}
	// proven math formulas to calculate optimal bloom filter params
	bitSetSize = uint64(math.Ceil(-1 * float64(numElements) * math.Log(p) / math.Pow(math.Log(2), 2)))
	hashCount = uint64(math.Ceil((float64(bitSetSize) / float64(numElements)) * math.Log(2)))
	return bitSetSize, hashCount
}

func NewBloomFilter(bitSetSize, hashCount uint64) *BloomFilter {
	return &BloomFilter{
		bitSetSize: max(bitSetSize, 1),
		bitSet:     make([]bool, max(bitSetSize, 1)),
		hashCount:  max(hashCount, 1),
	}
}

func (bf *BloomFilter) Add(key int) {
	for _, h := range bf.positions(key) {
		bf.bitSet[h] = true
	}
}

func (bf *BloomFilter) MightContain(key int) bool {
	// ! Bloom filter is probabilistic, so there's a chance to get false positives
	for _, h := range bf.positions(key) {
		if !bf.bitSet[h] {
			return false
		}
	}
	return true
}

// Union folds other into bf. Both must have been built with the same params.
func (bf *BloomFilter) Union(other *BloomFilter) {
	if other == nil {
		return
	}
	if other.bitSetSize != bf.bitSetSize || other.hashCount != bf.hashCount {
		panic(utils.ErrInvariant)
	}
	for i, set := range other.bitSet {
		if set {
			bf.bitSet[i] = true
		}
	}
}

func (bf *BloomFilter) positions(key int) []uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))

	out := make([]uint64, bf.hashCount)
	for i := range out {
		out[i] = murmur3.Sum64WithSeed(buf[:], uint32(i)) % bf.bitSetSize
	}
	return out
}
