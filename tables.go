package slabfit

// tables holds the immutable lookup tables compiled once from a validated
// Config.
type tables struct {
	blockBytes         []uint32
	blockLog2          []uint8
	slabBytes          []uint32
	blocksPerSlab      []uint32
	extraBlocksPerSlab []uint32

	// sizeLog2ToBucket[k] is the smallest bucket index b with
	// blockLog2[b] >= k, for k in [0, largestBlockLog2].
	sizeLog2ToBucket []uint8

	smallestBlockLog2 uint8
	largestBlockLog2  uint8
	bucketCount       int
}

// buildTables compiles the derived tables from an already-validated bucket
// list. Callers must call Config.validate first.
func buildTables(buckets []Bucket) *tables {
	n := len(buckets)
	t := &tables{
		blockBytes:         make([]uint32, n),
		blockLog2:          make([]uint8, n),
		slabBytes:          make([]uint32, n),
		blocksPerSlab:      make([]uint32, n),
		extraBlocksPerSlab: make([]uint32, n),
		bucketCount:        n,
	}

	for i, b := range buckets {
		t.blockBytes[i] = b.BlockSize
		t.blockLog2[i] = log2Ceil(uint64(b.BlockSize))
		t.slabBytes[i] = b.SlabSize
		// blocks_per_slab = slab_size / block_size, not the reverse.
		t.blocksPerSlab[i] = b.SlabSize / b.BlockSize
		t.extraBlocksPerSlab[i] = t.blocksPerSlab[i] - 1
	}

	t.smallestBlockLog2 = t.blockLog2[0]
	t.largestBlockLog2 = t.blockLog2[n-1]

	// Single sweep building size_log2_to_bucket: walk k upward, advancing
	// the bucket index whenever k exceeds the current bucket's block_log2.
	t.sizeLog2ToBucket = make([]uint8, int(t.largestBlockLog2)+1)
	bucket := 0
	for k := 0; k <= int(t.largestBlockLog2); k++ {
		for bucket < n-1 && uint8(k) > t.blockLog2[bucket] {
			bucket++
		}
		t.sizeLog2ToBucket[k] = uint8(bucket)
	}

	return t
}

// bucketForLog2 returns the bucket index for a size-class log2 that is
// guaranteed to be within [0, largestBlockLog2] (i.e. not a large request).
func (t *tables) bucketForLog2(k uint8) int {
	return int(t.sizeLog2ToBucket[k])
}
