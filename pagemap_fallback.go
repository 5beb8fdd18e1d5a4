//go:build !unix

package slabfit

import (
	"fmt"
	"runtime"
	"unsafe"
)

// osPageMapper is the non-unix fallback PageMapper: it has no real mmap to
// call into, so it carves aligned regions out of ordinary Go heap
// allocations and pins them with runtime.Pinner so the garbage collector
// never reclaims or moves memory the allocator has handed out as a slab.
// This is best-effort, not a substitute for real page mapping guarantees —
// it exists so the allocator still functions on targets without a
// unix-style mmap.
type osPageMapper struct {
	pins map[uintptr]*pinnedRegion
}

type pinnedRegion struct {
	backing []byte
	pinner  runtime.Pinner
}

// NewOSPageMapper returns the default page mapper for the running target.
func NewOSPageMapper() PageMapper {
	return &osPageMapper{pins: make(map[uintptr]*pinnedRegion)}
}

func (m *osPageMapper) Map(length, alignment uintptr) (unsafe.Pointer, error) {
	if length == 0 {
		return nil, fmt.Errorf("slabfit: cannot map zero-length region")
	}
	if alignment == 0 {
		alignment = 1
	}

	backing := make([]byte, length+alignment)
	base := uintptr(unsafe.Pointer(&backing[0]))
	aligned := (base + alignment - 1) &^ (alignment - 1)

	region := &pinnedRegion{backing: backing}
	region.pinner.Pin(&backing[0])
	m.pins[aligned] = region

	return unsafe.Pointer(aligned), nil
}

func (m *osPageMapper) Unmap(ptr unsafe.Pointer, _ uintptr) {
	addr := uintptr(ptr)
	if region, ok := m.pins[addr]; ok {
		region.pinner.Unpin()
		delete(m.pins, addr)
	}
}

func (m *osPageMapper) Realloc(ptr unsafe.Pointer, oldLength, newLength uintptr, movePermitted bool) (unsafe.Pointer, error) {
	if !movePermitted {
		return nil, nil
	}

	newPtr, err := m.Map(newLength, 1)
	if err != nil {
		return nil, err
	}

	copyLen := minOf(oldLength, newLength)
	if copyLen > 0 {
		src := unsafe.Slice((*byte)(ptr), int(copyLen))
		dst := unsafe.Slice((*byte)(newPtr), int(copyLen))
		copy(dst, src)
	}

	m.Unmap(ptr, oldLength)
	return newPtr, nil
}

func pageSize() int {
	return 4096
}
