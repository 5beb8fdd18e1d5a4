package slabfit

import (
	"log/slog"
	"unsafe"
)

// Allocator is the compiled, ready-to-use slab allocator produced by New.
// It is not safe for concurrent use.
type Allocator struct {
	tbl      *tables
	buckets  []bucketState
	mapper   PageMapper
	stats    *Stats
	policy   LargeAllocPolicy
	hints    Hints
	wordSize uintptr
	logger   *slog.Logger
}

// New validates cfg and compiles an Allocator from it. Misconfiguration is
// reported as an error, never a panic.
func New(cfg Config) (*Allocator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mapper := cfg.PageMapper
	if mapper == nil {
		mapper = NewOSPageMapper()
	}

	a := &Allocator{
		tbl:      buildTables(cfg.Buckets),
		mapper:   mapper,
		policy:   cfg.LargeAllocPolicy,
		hints:    cfg.Hints,
		wordSize: cfg.wordSize(),
		logger:   cfg.Logger,
	}
	a.buckets = make([]bucketState, a.tbl.bucketCount)

	if cfg.TrackStatistics {
		a.stats = newStats(a.tbl.bucketCount, cfg.LargeAllocPolicy == UsePageAllocator)
	}

	return a, nil
}

// classify is the bucket-selection math shared by every operation below:
// the smallest size class covering both length and alignment, clamped to
// the smallest configured block, and whether that class exceeds the
// largest configured bucket.
func (a *Allocator) classify(length, alignment uintptr) (log2 uint8, large bool) {
	k := log2Ceil(uint64(length))
	if al := alignLog2(alignment); al > k {
		k = al
	}
	if a.tbl.smallestBlockLog2 > k {
		k = a.tbl.smallestBlockLog2
	}
	return k, k > a.tbl.largestBlockLog2
}

// Alloc services a request of length bytes aligned to alignment, returning
// a pointer aligned to max(alignment, block size of the chosen bucket).
// Contents are uninitialised. Returns (nil, ErrOutOfMemory) on failure.
func (a *Allocator) Alloc(length, alignment uintptr) (unsafe.Pointer, error) {
	k, large := a.classify(length, alignment)

	switch a.policy {
	case UsePageAllocator:
		if hintBranch(large, a.hints.LargeAllocation) {
			return a.allocLarge(length, alignment)
		}
	case Panic:
		if large {
			a.panicOversize(k)
		}
	case Unreachable:
		// No range check inserted: the caller guarantees k is always in
		// range. An out-of-range k indexes sizeLog2ToBucket out of bounds
		// below and Go's own slice bounds check panics — a valid
		// manifestation of the undefined behaviour this policy promises.
	}

	b := a.tbl.bucketForLog2(k)
	return a.allocFromBucket(b, length)
}

// Free returns ptr to its bucket's recycled list. The caller must pass the
// same (length, alignment) used at allocation; the allocator does not
// verify this.
func (a *Allocator) Free(ptr unsafe.Pointer, length, alignment uintptr) {
	if ptr == nil {
		return
	}
	k, large := a.classify(length, alignment)

	switch a.policy {
	case UsePageAllocator:
		if hintBranch(large, a.hints.LargeAllocation) {
			a.mapper.Unmap(ptr, length)
			a.statsLargeFree(length)
			return
		}
	case Panic:
		if large {
			a.panicOversize(k)
		}
	case Unreachable:
	}

	b := a.tbl.bucketForLog2(k)
	a.freeToBucket(b, ptr)
}

// Resize reports whether (newLength, alignment) maps to the same bucket as
// (oldLength, alignment); no data is ever copied.
func (a *Allocator) Resize(ptr unsafe.Pointer, oldLength, alignment, newLength uintptr) bool {
	kOld, oldLarge := a.classify(oldLength, alignment)
	kNew, newLarge := a.classify(newLength, alignment)

	switch a.policy {
	case UsePageAllocator:
		if oldLarge && newLarge {
			resized, err := a.mapper.Realloc(ptr, oldLength, newLength, false)
			ok := err == nil && resized != nil
			a.statsLargeResize(oldLength, newLength, ok)
			return ok
		}
		if oldLarge != newLarge {
			return false
		}
	case Panic:
		if oldLarge || newLarge {
			a.panicOversize(maxLog2(kOld, kNew))
		}
	case Unreachable:
	}

	bOld := a.tbl.bucketForLog2(kOld)
	bNew := a.tbl.bucketForLog2(kNew)
	if bNew > bOld {
		a.statsRejectedGrow(bOld)
	}
	return bOld == bNew
}

// Remap reports the same class test as Resize but returns ptr unchanged on
// success, or the null sentinel when the caller must fall back to an
// alloc/copy/free sequence itself. Under UsePageAllocator, when both
// lengths are large, it returns whatever the PageMapper's moving Realloc
// returns, which may be a new address.
func (a *Allocator) Remap(ptr unsafe.Pointer, oldLength, alignment, newLength uintptr) unsafe.Pointer {
	kOld, oldLarge := a.classify(oldLength, alignment)
	kNew, newLarge := a.classify(newLength, alignment)

	switch a.policy {
	case UsePageAllocator:
		if oldLarge && newLarge {
			resized, err := a.mapper.Realloc(ptr, oldLength, newLength, true)
			a.statsLargeResize(oldLength, newLength, err == nil && resized != nil)
			return resized
		}
		if oldLarge != newLarge {
			return nil
		}
	case Panic:
		if oldLarge || newLarge {
			a.panicOversize(maxLog2(kOld, kNew))
		}
	case Unreachable:
	}

	bOld := a.tbl.bucketForLog2(kOld)
	bNew := a.tbl.bucketForLog2(kNew)
	if bNew > bOld {
		a.statsRejectedGrow(bOld)
	}
	if bOld == bNew {
		return ptr
	}
	return nil
}

// Stats returns the live statistics aggregate, or nil if tracking was not
// enabled at construction — callers use the same method either way.
func (a *Allocator) Stats() *Stats {
	return a.stats
}

func maxLog2(a, b uint8) uint8 {
	return maxOf(a, b)
}
