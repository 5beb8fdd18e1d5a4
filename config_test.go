package slabfit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoBucketConfig() Config {
	return Config{
		Buckets: []Bucket{
			{BlockSize: 128, SlabSize: 4096},
			{BlockSize: 1024, SlabSize: 16384},
		},
		LargeAllocPolicy: UsePageAllocator,
		TrackStatistics:  true,
		PageMapper:       newFakePageMapper(),
	}
}

func TestValidateEmptyBucketList(t *testing.T) {
	err := Config{}.validate()
	assert.ErrorIs(t, err, ErrEmptyBucketList)
}

func TestValidateBucketsNotIncreasing(t *testing.T) {
	cfg := Config{Buckets: []Bucket{
		{BlockSize: 128, SlabSize: 4096},
		{BlockSize: 128, SlabSize: 4096},
	}}
	assert.ErrorIs(t, cfg.validate(), ErrBucketsNotIncreasing)

	cfg = Config{Buckets: []Bucket{
		{BlockSize: 256, SlabSize: 4096},
		{BlockSize: 128, SlabSize: 4096},
	}}
	assert.ErrorIs(t, cfg.validate(), ErrBucketsNotIncreasing)
}

func TestValidateBlockSizeTooSmall(t *testing.T) {
	cfg := Config{
		WordSize: 8,
		Buckets:  []Bucket{{BlockSize: 4, SlabSize: 4096}},
	}
	assert.ErrorIs(t, cfg.validate(), ErrBlockSizeTooSmall)
}

func TestValidateBlockLargerThanSlab(t *testing.T) {
	cfg := Config{Buckets: []Bucket{{BlockSize: 8192, SlabSize: 4096}}}
	assert.ErrorIs(t, cfg.validate(), ErrBlockLargerThanSlab)
}

func TestValidateSlabBelowMinPage(t *testing.T) {
	cfg := Config{Buckets: []Bucket{{BlockSize: 128, SlabSize: 2048}}}
	assert.ErrorIs(t, cfg.validate(), ErrSlabBelowMinPage)
}

func TestValidateAccepts(t *testing.T) {
	err := twoBucketConfig().validate()
	assert.NoError(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyBucketList))
}
