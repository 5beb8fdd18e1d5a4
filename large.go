package slabfit

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// allocLarge delegates an oversize request directly to the page mapper
// under the UsePageAllocator policy.
func (a *Allocator) allocLarge(length, alignment uintptr) (unsafe.Pointer, error) {
	ptr, err := a.mapper.Map(length, alignment)
	if err != nil || ptr == nil {
		a.statsLargeAllocFailure(length)
		return nil, ErrOutOfMemory
	}
	a.statsLargeAlloc(length)
	return ptr, nil
}

// panicOversize implements the Panic policy's fatal error: the message
// names the request's size class and the largest supported class by
// their human-readable names.
func (a *Allocator) panicOversize(k uint8) {
	msg := fmt.Sprintf("slabfit: request of size class %s exceeds largest supported bucket %s",
		sizeClassName(k), sizeClassName(a.tbl.largestBlockLog2))
	if a.logger != nil {
		a.logger.Error("slabfit: oversize allocation under Panic policy",
			slog.String("requested", sizeClassName(k)),
			slog.String("largest_bucket", sizeClassName(a.tbl.largestBlockLog2)))
	}
	panic(msg)
}
