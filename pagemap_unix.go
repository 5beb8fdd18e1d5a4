//go:build unix

package slabfit

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// osPageMapper is the default PageMapper on unix targets, backed directly
// by mmap(2)/munmap(2): anonymous, private, read+write mappings requested
// straight from the kernel with no intermediate allocator.
//
// mmap only guarantees page alignment. When a caller needs an alignment
// coarser than the page size, osPageMapper over-allocates and remembers
// the real mmap base/length for that oversized mapping so Unmap can pass
// the kernel back exactly what it gave out. The allocator that owns an
// osPageMapper is itself single-threaded, so this bookkeeping needs no
// locking.
type osPageMapper struct {
	oversized map[uintptr]rawMapping
}

type rawMapping struct {
	base uintptr
	size uintptr
}

// NewOSPageMapper returns the default page mapper for the running target.
// On unix it maps memory directly via mmap; see pagemap_fallback.go for the
// non-unix implementation.
func NewOSPageMapper() PageMapper {
	return &osPageMapper{oversized: make(map[uintptr]rawMapping)}
}

func (m *osPageMapper) Map(length, alignment uintptr) (unsafe.Pointer, error) {
	if length == 0 {
		return nil, fmt.Errorf("slabfit: cannot map zero-length region")
	}

	page := uintptr(pageSize())
	if alignment <= page {
		raw, err := unix.Mmap(-1, 0, int(length),
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_ANON|unix.MAP_PRIVATE)
		if err != nil {
			return nil, fmt.Errorf("%w: mmap: %v", ErrOutOfMemory, err)
		}
		return unsafe.Pointer(&raw[0]), nil
	}

	mapLen := length + alignment
	raw, err := unix.Mmap(-1, 0, int(mapLen),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %v", ErrOutOfMemory, err)
	}

	base := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (base + alignment - 1) &^ (alignment - 1)
	m.oversized[aligned] = rawMapping{base: base, size: mapLen}
	return unsafe.Pointer(aligned), nil
}

func (m *osPageMapper) Unmap(ptr unsafe.Pointer, length uintptr) {
	if ptr == nil || length == 0 {
		return
	}
	addr := uintptr(ptr)
	if mapping, ok := m.oversized[addr]; ok {
		delete(m.oversized, addr)
		slice := unsafe.Slice((*byte)(unsafe.Pointer(mapping.base)), int(mapping.size))
		_ = unix.Munmap(slice)
		return
	}
	slice := unsafe.Slice((*byte)(ptr), int(length))
	_ = unix.Munmap(slice)
}

func (m *osPageMapper) Realloc(ptr unsafe.Pointer, oldLength, newLength uintptr, movePermitted bool) (unsafe.Pointer, error) {
	if !movePermitted {
		// mmap has no portable in-place resize; refuse rather than risk
		// silently relocating data the caller told us not to move.
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
	return unix.Getpagesize()
}
