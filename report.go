package slabfit

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteReport renders the current free-list state, and statistics when
// tracking is enabled, into w under the given label. The allocator
// performs no I/O of its own; w is the caller's sink.
func (a *Allocator) WriteReport(w io.Writer, label string) error {
	if _, err := fmt.Fprintf(w, "slabfit report: %s\n", label); err != nil {
		return err
	}

	bucketTable := tablewriter.NewWriter(w)
	bucketTable.SetHeader([]string{"size class", "free slabs (est.)", "free blocks", "free bytes"})
	for b := 0; b < a.tbl.bucketCount; b++ {
		bs := &a.buckets[b]
		freeBlocks := uint64(bs.recycledCount) + uint64(bs.brandNewCount)

		// Free-slab count is an estimate, not an exact count: recycled
		// blocks from different slabs intermix on a single free list.
		freeSlabs := freeBlocks / uint64(a.tbl.blocksPerSlab[b])
		freeBytes := freeBlocks * uint64(a.tbl.blockBytes[b])

		bucketTable.Append([]string{
			sizeClassName(a.tbl.blockLog2[b]),
			strconv.FormatUint(freeSlabs, 10),
			strconv.FormatUint(freeBlocks, 10),
			strconv.FormatUint(freeBytes, 10),
		})
	}
	bucketTable.Render()

	if a.stats == nil {
		return nil
	}
	return a.writeStatsTable(w)
}

func (a *Allocator) writeStatsTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "statistics:"); err != nil {
		return err
	}

	statsTable := tablewriter.NewWriter(w)
	statsTable.SetAutoWrapText(false)
	statsTable.SetHeader([]string{"metric", "value"})
	statsTable.Append([]string{"current bytes outstanding", strconv.FormatUint(a.stats.CurrentBytesOutstanding, 10)})
	statsTable.Append([]string{"peak bytes outstanding", strconv.FormatUint(a.stats.PeakBytesOutstanding, 10)})
	statsTable.Append([]string{"smallest request", strconv.FormatUint(a.stats.SmallestRequest, 10)})
	statsTable.Append([]string{"largest request", strconv.FormatUint(a.stats.LargestRequest, 10)})

	for b, bs := range a.stats.Buckets {
		prefix := "bucket[" + sizeClassName(a.tbl.blockLog2[b]) + "] "
		statsTable.Append([]string{prefix + "smallest request", strconv.FormatUint(bs.SmallestRequest, 10)})
		statsTable.Append([]string{prefix + "largest request", strconv.FormatUint(bs.LargestRequest, 10)})
		statsTable.Append([]string{prefix + "current live blocks", strconv.FormatUint(bs.CurrentLiveBlocks, 10)})
		statsTable.Append([]string{prefix + "peak live blocks", strconv.FormatUint(bs.PeakLiveBlocks, 10)})
		statsTable.Append([]string{prefix + "current live slabs", strconv.FormatUint(bs.CurrentLiveSlabs, 10)})
		statsTable.Append([]string{prefix + "peak live slabs", strconv.FormatUint(bs.PeakLiveSlabs, 10)})
		statsTable.Append([]string{prefix + "rejected grows", strconv.FormatUint(bs.RejectedGrows, 10)})
	}

	if a.stats.Large != nil {
		l := a.stats.Large
		statsTable.Append([]string{"large: smallest request", strconv.FormatUint(l.SmallestRequest, 10)})
		statsTable.Append([]string{"large: largest request", strconv.FormatUint(l.LargestRequest, 10)})
		statsTable.Append([]string{"large: current bytes outstanding", strconv.FormatUint(l.CurrentBytesOutstanding, 10)})
		statsTable.Append([]string{"large: peak bytes outstanding", strconv.FormatUint(l.PeakBytesOutstanding, 10)})
		statsTable.Append([]string{"large: current allocation count", strconv.FormatUint(l.CurrentAllocationCount, 10)})
		statsTable.Append([]string{"large: peak allocation count", strconv.FormatUint(l.PeakAllocationCount, 10)})
		statsTable.Append([]string{"large: largest grow delta", strconv.FormatUint(l.LargestGrowDelta, 10)})
		statsTable.Append([]string{"large: largest shrink delta", strconv.FormatUint(l.LargestShrinkDelta, 10)})
	}

	statsTable.Render()
	return nil
}
