package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Span is a half-open index range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Partition splits [0, n) into at most parts contiguous spans of near-equal
// size. The split depends only on n and parts.
func Partition(n, parts int) []Span {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	spans := make([]Span, 0, parts)
	size, rest := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rest {
			hi++
		}
		spans = append(spans, Span{Lo: lo, Hi: hi})
		lo = hi
	}
	return spans
}

// Workers returns n when positive, otherwise GOMAXPROCS.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// ParallelRange runs action over [0, n) split into spans, one goroutine per
// span and at most workers at a time. It waits for every span and returns the
// first error. Spans not yet started are skipped once ctx is done or an
// action failed.
func ParallelRange(ctx context.Context, n, workers int, action func(ctx context.Context, span Span) error) error {
	workers = Workers(workers)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, span := range Partition(n, workers) {
		if err := groupCtx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return action(groupCtx, span)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
