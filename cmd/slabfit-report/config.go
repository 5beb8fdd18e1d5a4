package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/slabfit/slabfit"
)

// fileConfig is the on-disk shape of a bucket configuration, decoded with
// github.com/BurntSushi/toml. It mirrors slabfit.Config but keeps the
// policy as a string so the file stays human-writable.
type fileConfig struct {
	Buckets []struct {
		BlockSize uint32 `toml:"block_size"`
		SlabSize  uint32 `toml:"slab_size"`
	} `toml:"buckets"`
	LargeAllocPolicy string `toml:"large_alloc_policy"`
	TrackStatistics  bool   `toml:"track_statistics"`
}

func loadConfig(path string) (slabfit.Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return slabfit.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}

	policy, err := parsePolicy(fc.LargeAllocPolicy)
	if err != nil {
		return slabfit.Config{}, err
	}

	buckets := make([]slabfit.Bucket, len(fc.Buckets))
	for i, b := range fc.Buckets {
		buckets[i] = slabfit.Bucket{BlockSize: b.BlockSize, SlabSize: b.SlabSize}
	}

	return slabfit.Config{
		Buckets:          buckets,
		LargeAllocPolicy: policy,
		TrackStatistics:  fc.TrackStatistics,
	}, nil
}

func parsePolicy(name string) (slabfit.LargeAllocPolicy, error) {
	switch name {
	case "", "use_page_allocator":
		return slabfit.UsePageAllocator, nil
	case "panic":
		return slabfit.Panic, nil
	case "unreachable":
		return slabfit.Unreachable, nil
	default:
		return 0, fmt.Errorf("unknown large_alloc_policy %q", name)
	}
}
