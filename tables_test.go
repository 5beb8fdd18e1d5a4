package slabfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTablesTwoBucket(t *testing.T) {
	buckets := []Bucket{
		{BlockSize: 128, SlabSize: 4096},
		{BlockSize: 1024, SlabSize: 16384},
	}
	tbl := buildTables(buckets)

	assert.Equal(t, []uint32{128, 1024}, tbl.blockBytes)
	assert.Equal(t, []uint8{7, 10}, tbl.blockLog2)
	assert.Equal(t, []uint32{32, 16}, tbl.blocksPerSlab, "slab_size / block_size, not the reverse")
	assert.Equal(t, []uint32{31, 15}, tbl.extraBlocksPerSlab)
	assert.Equal(t, uint8(7), tbl.smallestBlockLog2)
	assert.Equal(t, uint8(10), tbl.largestBlockLog2)

	// size_log2_to_bucket[k] must map every k in [0, largestBlockLog2] to
	// the smallest bucket whose block_log2 >= k.
	for k := 0; k <= 7; k++ {
		assert.Equal(t, 0, tbl.bucketForLog2(uint8(k)), "k=%d", k)
	}
	for k := 8; k <= 10; k++ {
		assert.Equal(t, 1, tbl.bucketForLog2(uint8(k)), "k=%d", k)
	}
}

func TestBuildTablesSweepIsMonotonic(t *testing.T) {
	buckets := []Bucket{
		{BlockSize: 16, SlabSize: 4096},
		{BlockSize: 64, SlabSize: 4096},
		{BlockSize: 256, SlabSize: 4096},
		{BlockSize: 4096, SlabSize: 65536},
	}
	tbl := buildTables(buckets)

	prev := -1
	for k := 0; k <= int(tbl.largestBlockLog2); k++ {
		b := tbl.bucketForLog2(uint8(k))
		assert.GreaterOrEqual(t, b, prev)
		prev = b
	}
	// Every bucket log2 boundary must land exactly on its own bucket.
	for i, log2 := range tbl.blockLog2 {
		assert.Equal(t, i, tbl.bucketForLog2(log2))
	}
}
