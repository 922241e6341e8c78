package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  []Span
	}{
		{name: "even", n: 6, parts: 3, want: []Span{{0, 2}, {2, 4}, {4, 6}}},
		{name: "remainder goes first", n: 7, parts: 3, want: []Span{{0, 3}, {3, 5}, {5, 7}}},
		{name: "more parts than items", n: 2, parts: 8, want: []Span{{0, 1}, {1, 2}}},
		{name: "empty", n: 0, parts: 4, want: nil},
		{name: "no parts", n: 3, parts: 0, want: []Span{{0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Partition(tt.n, tt.parts))
		})
	}
}

func TestParallelRange_VisitsEveryIndexOnce(t *testing.T) {
	const n = 10_001
	seen := make([]int32, n)
	err := ParallelRange(context.Background(), n, 7, func(_ context.Context, span Span) error {
		for i := span.Lo; i < span.Hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
		return nil
	})
	require.NoError(t, err)
	for i, c := range seen {
		require.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestParallelRange_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := ParallelRange(context.Background(), 100, 4, func(_ context.Context, span Span) error {
		if span.Lo == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelRange_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	err := ParallelRange(ctx, 100, 4, func(_ context.Context, _ Span) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}
