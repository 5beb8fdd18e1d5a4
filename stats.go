package slabfit

// Stats is the optional aggregate tracker. It is nil on an Allocator
// constructed with Config.TrackStatistics == false; every hot-path update
// site guards on that nil rather than branching on a separate enabled
// flag, which is the closest idiomatic Go approximation of zero footprint
// when disabled.
type Stats struct {
	// Process-wide.
	CurrentBytesOutstanding uint64
	PeakBytesOutstanding    uint64
	SmallestRequest         uint64
	LargestRequest          uint64

	Buckets []BucketStats

	// Large is nil unless the allocator's LargeAllocPolicy is
	// UsePageAllocator.
	Large *LargeStats

	// sawRequest distinguishes "no request recorded yet" from a
	// legitimately recorded zero-length request, since SmallestRequest's
	// zero value is itself a valid observed size.
	sawRequest bool
}

// BucketStats are the per-bucket counters.
type BucketStats struct {
	SmallestRequest   uint64
	LargestRequest    uint64
	CurrentLiveBlocks uint64
	PeakLiveBlocks    uint64
	CurrentLiveSlabs  uint64
	PeakLiveSlabs     uint64
	RejectedGrows     uint64

	sawRequest bool
}

// LargeStats are the large-allocation counters.
type LargeStats struct {
	SmallestRequest         uint64
	LargestRequest          uint64
	CurrentBytesOutstanding uint64
	PeakBytesOutstanding    uint64
	CurrentAllocationCount  uint64
	PeakAllocationCount     uint64
	LargestGrowDelta        uint64
	LargestShrinkDelta      uint64

	sawRequest bool
}

func newStats(bucketCount int, trackLarge bool) *Stats {
	s := &Stats{Buckets: make([]BucketStats, bucketCount)}
	if trackLarge {
		s.Large = &LargeStats{}
	}
	return s
}

func (s *Stats) recordRequestSize(length uint64) {
	if !s.sawRequest || length < s.SmallestRequest {
		s.SmallestRequest = length
	}
	if !s.sawRequest || length > s.LargestRequest {
		s.LargestRequest = length
	}
	s.sawRequest = true
}

func (s *Stats) recordBytesOutstanding(delta int64) {
	if delta >= 0 {
		s.CurrentBytesOutstanding += uint64(delta)
	} else {
		s.CurrentBytesOutstanding -= uint64(-delta)
	}
	if s.CurrentBytesOutstanding > s.PeakBytesOutstanding {
		s.PeakBytesOutstanding = s.CurrentBytesOutstanding
	}
}

// statsBucketAlloc records a successful small-path allocation: the actual
// caller-requested length for the min/max counters, and the bucket's block
// size for live-block and bytes-outstanding bookkeeping.
func (a *Allocator) statsBucketAlloc(b int, requestLength uintptr) {
	if a.stats == nil {
		return
	}
	a.stats.recordRequestSize(uint64(requestLength))
	a.stats.recordBytesOutstanding(int64(a.tbl.blockBytes[b]))

	bs := &a.stats.Buckets[b]
	bs.recordRequestSize(uint64(requestLength))
	bs.CurrentLiveBlocks++
	if bs.CurrentLiveBlocks > bs.PeakLiveBlocks {
		bs.PeakLiveBlocks = bs.CurrentLiveBlocks
	}
}

func (bs *BucketStats) recordRequestSize(length uint64) {
	if !bs.sawRequest || length < bs.SmallestRequest {
		bs.SmallestRequest = length
	}
	if !bs.sawRequest || length > bs.LargestRequest {
		bs.LargestRequest = length
	}
	bs.sawRequest = true
}

func (a *Allocator) statsBucketAllocFailure(b int) {
	// Callers already observe allocation failure via the returned error;
	// nothing to record here today. Kept as a named hook so a future
	// counter has a single call site to extend.
}

func (a *Allocator) statsNewSlab(b int) {
	if a.stats == nil {
		return
	}
	bs := &a.stats.Buckets[b]
	bs.CurrentLiveSlabs++
	if bs.CurrentLiveSlabs > bs.PeakLiveSlabs {
		bs.PeakLiveSlabs = bs.CurrentLiveSlabs
	}
}

func (a *Allocator) statsBucketFree(b int) {
	if a.stats == nil {
		return
	}
	a.stats.recordBytesOutstanding(-int64(a.tbl.blockBytes[b]))

	bs := &a.stats.Buckets[b]
	if bs.CurrentLiveBlocks > 0 {
		bs.CurrentLiveBlocks--
	}
}

func (a *Allocator) statsRejectedGrow(b int) {
	if a.stats == nil {
		return
	}
	a.stats.Buckets[b].RejectedGrows++
}

func (a *Allocator) statsLargeAlloc(length uintptr) {
	if a.stats == nil || a.stats.Large == nil {
		return
	}
	l := a.stats.Large
	l.recordRequestSize(uint64(length))
	l.CurrentBytesOutstanding += uint64(length)
	if l.CurrentBytesOutstanding > l.PeakBytesOutstanding {
		l.PeakBytesOutstanding = l.CurrentBytesOutstanding
	}
	l.CurrentAllocationCount++
	if l.CurrentAllocationCount > l.PeakAllocationCount {
		l.PeakAllocationCount = l.CurrentAllocationCount
	}
}

func (l *LargeStats) recordRequestSize(length uint64) {
	if !l.sawRequest || length < l.SmallestRequest {
		l.SmallestRequest = length
	}
	if !l.sawRequest || length > l.LargestRequest {
		l.LargestRequest = length
	}
	l.sawRequest = true
}

func (a *Allocator) statsLargeAllocFailure(length uintptr) {
	// See statsBucketAllocFailure: no dedicated failure counter today.
}

func (a *Allocator) statsLargeFree(length uintptr) {
	if a.stats == nil || a.stats.Large == nil {
		return
	}
	l := a.stats.Large
	if l.CurrentBytesOutstanding >= uint64(length) {
		l.CurrentBytesOutstanding -= uint64(length)
	} else {
		l.CurrentBytesOutstanding = 0
	}
	if l.CurrentAllocationCount > 0 {
		l.CurrentAllocationCount--
	}
}

func (a *Allocator) statsLargeResize(oldLength, newLength uintptr, ok bool) {
	if a.stats == nil || a.stats.Large == nil {
		return
	}
	l := a.stats.Large
	if newLength > oldLength {
		delta := uint64(newLength - oldLength)
		if delta > l.LargestGrowDelta {
			l.LargestGrowDelta = delta
		}
	} else if oldLength > newLength {
		delta := uint64(oldLength - newLength)
		if delta > l.LargestShrinkDelta {
			l.LargestShrinkDelta = delta
		}
	}
	if ok {
		if newLength > oldLength {
			l.CurrentBytesOutstanding += uint64(newLength - oldLength)
		} else {
			l.CurrentBytesOutstanding -= uint64(oldLength - newLength)
		}
		if l.CurrentBytesOutstanding > l.PeakBytesOutstanding {
			l.PeakBytesOutstanding = l.CurrentBytesOutstanding
		}
	}
}
