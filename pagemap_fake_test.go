package slabfit

import (
	"fmt"
	"unsafe"
)

// fakePageMapper is a deterministic, allocation-order-stable PageMapper
// used throughout the test suite so tests don't depend on the real OS
// mmap's address layout. It keeps every backing slice alive in a map,
// mirroring the bookkeeping osPageMapper needs for oversized alignments,
// but without any syscalls.
type fakePageMapper struct {
	regions    map[uintptr][]byte
	mapCalls   int
	unmapCalls int
	failAfter  int // Map fails once mapCalls would exceed failAfter; 0 means never fail.
}

func newFakePageMapper() *fakePageMapper {
	return &fakePageMapper{regions: make(map[uintptr][]byte)}
}

func (m *fakePageMapper) Map(length, alignment uintptr) (unsafe.Pointer, error) {
	m.mapCalls++
	if m.failAfter != 0 && m.mapCalls > m.failAfter {
		return nil, fmt.Errorf("fakePageMapper: simulated exhaustion")
	}
	if alignment == 0 {
		alignment = 1
	}

	backing := make([]byte, length+alignment)
	base := uintptr(unsafe.Pointer(&backing[0]))
	aligned := (base + alignment - 1) &^ (alignment - 1)

	m.regions[aligned] = backing
	return unsafe.Pointer(aligned), nil
}

func (m *fakePageMapper) Unmap(ptr unsafe.Pointer, _ uintptr) {
	m.unmapCalls++
	delete(m.regions, uintptr(ptr))
}

func (m *fakePageMapper) Realloc(ptr unsafe.Pointer, oldLength, newLength uintptr, movePermitted bool) (unsafe.Pointer, error) {
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
