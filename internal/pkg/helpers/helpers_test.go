package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{2621440, "2.5 MB"},
		{1073741824, "1 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatFileSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 12)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 12, limit)

	offset, limit = CalculateOffsetLimit(3, 12)
	assert.Equal(t, uint64(24), offset)
	assert.Equal(t, 12, limit)

	// Out-of-range sizes fall back to the default.
	offset, limit = CalculateOffsetLimit(2, 0)
	assert.Equal(t, uint64(DefaultPageSize), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)

	offset, _ = CalculateOffsetLimit(-1, 10)
	assert.Equal(t, uint64(0), offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(30, 2, 12)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 12, info.PageSize)
	assert.Equal(t, int64(30), info.TotalItems)

	// Empty listing still reports one page.
	info = NewPaginationInfo(0, 1, 12)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 1, info.CurrentPage)

	// Page beyond the end clamps.
	info = NewPaginationInfo(10, 5, 12)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
}
