// Package slabfit implements a segregated-fit slab allocator suitable as a
// drop-in replacement for a platform allocator in single-threaded contexts.
//
// Requests are routed to a fixed power-of-two size class ("bucket"); each
// bucket owns a free list of equally sized blocks carved out of page-aligned
// slabs obtained from an external PageMapper. Requests larger than the
// largest configured bucket are handled per a configurable large-allocation
// policy.
//
// Basic usage:
//
//	alloc, err := slabfit.New(slabfit.Config{
//		Buckets: []slabfit.Bucket{
//			{BlockSize: 128, SlabSize: 4096},
//			{BlockSize: 1024, SlabSize: 16384},
//		},
//		LargeAllocPolicy: slabfit.UsePageAllocator,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	p, err := alloc.Alloc(64, 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer alloc.Free(p, 64, 1)
//
// slabfit is not safe for concurrent use: an Allocator mutates per-bucket
// state unconditionally on every hot-path call and assumes no concurrent
// caller.
package slabfit
