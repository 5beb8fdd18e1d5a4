package slabfit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportUntracked(t *testing.T) {
	mapper := newFakePageMapper()
	a, err := New(Config{
		Buckets:    []Bucket{{BlockSize: 128, SlabSize: 4096}, {BlockSize: 1024, SlabSize: 16384}},
		PageMapper: mapper,
		WordSize:   8,
	})
	require.NoError(t, err)

	_, err = a.Alloc(64, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.WriteReport(&buf, "demo"))

	out := buf.String()
	assert.Contains(t, out, "slabfit report: demo")
	assert.Contains(t, out, "128 bytes")
	assert.NotContains(t, out, "statistics:")
}

func TestWriteReportTrackedIncludesStats(t *testing.T) {
	mapper := newFakePageMapper()
	a, err := New(Config{
		Buckets:          []Bucket{{BlockSize: 128, SlabSize: 4096}, {BlockSize: 1024, SlabSize: 16384}},
		TrackStatistics:  true,
		LargeAllocPolicy: UsePageAllocator,
		PageMapper:       mapper,
		WordSize:         8,
	})
	require.NoError(t, err)

	p, err := a.Alloc(64, 1)
	require.NoError(t, err)
	_, err = a.Alloc(1 << 20, 1)
	require.NoError(t, err)
	a.Free(p, 64, 1)

	var buf bytes.Buffer
	require.NoError(t, a.WriteReport(&buf, "tracked"))

	out := buf.String()
	assert.Contains(t, out, "statistics:")
	assert.Contains(t, out, "current bytes outstanding")
	assert.Contains(t, out, "large: current bytes outstanding")
	assert.True(t, strings.Count(out, "rejected grows") >= 1)
}
