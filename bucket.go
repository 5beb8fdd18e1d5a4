package slabfit

import "unsafe"

// bucketState is the per-bucket dual free-list state: a recycled
// (intrusive singly-linked) list of blocks that were once live, and a
// bump pointer into the current partially-consumed slab for blocks that
// have never been issued.
type bucketState struct {
	recycledHead  uintptr
	recycledCount uint32
	brandNewHead  uintptr
	brandNewCount uint32
}

// allocFromBucket tries, in order, to unlink a recycled block, to
// bump-allocate a brand-new one out of the current slab, or to map a
// fresh slab and carve the first block from it. The intrusive free-list
// technique (the block's first machine word holds the address of the
// next free block) avoids any per-block header.
func (a *Allocator) allocFromBucket(b int, requestLength uintptr) (unsafe.Pointer, error) {
	bs := &a.buckets[b]

	if hintBranch(bs.recycledCount > 0, a.hints.RecycledBlocksAvailable) {
		head := bs.recycledHead
		next := *(*uintptr)(unsafe.Pointer(head))
		bs.recycledHead = next
		bs.recycledCount--
		a.statsBucketAlloc(b, requestLength)
		return unsafe.Pointer(head), nil
	}

	if hintBranch(bs.brandNewCount > 0, a.hints.BrandNewBlocksAvailable) {
		ptr := bs.brandNewHead
		bs.brandNewHead = ptr + uintptr(a.tbl.blockBytes[b])
		bs.brandNewCount--
		a.statsBucketAlloc(b, requestLength)
		return unsafe.Pointer(ptr), nil
	}

	slabPtr, err := a.mapper.Map(uintptr(a.tbl.slabBytes[b]), uintptr(a.tbl.blockBytes[b]))
	if err != nil || slabPtr == nil {
		a.statsBucketAllocFailure(b)
		return nil, ErrOutOfMemory
	}

	base := uintptr(slabPtr)
	bs.brandNewHead = base + uintptr(a.tbl.blockBytes[b])
	bs.brandNewCount = a.tbl.extraBlocksPerSlab[b]
	a.statsNewSlab(b)
	a.statsBucketAlloc(b, requestLength)
	return slabPtr, nil
}

// freeToBucket threads the freed block onto the head of the recycled
// list, overwriting its former contents with the previous head address.
func (a *Allocator) freeToBucket(b int, ptr unsafe.Pointer) {
	bs := &a.buckets[b]
	addr := uintptr(ptr)
	*(*uintptr)(ptr) = bs.recycledHead
	bs.recycledHead = addr
	bs.recycledCount++
	a.statsBucketFree(b)
}
