// Package interval provides a closed-interval type over ordered values.
// An Interval covers every value between Start and End inclusively.
package interval

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	// ErrStartAfterEnd is returned when an interval's start exceeds its end.
	ErrStartAfterEnd = errors.New("interval: start must not exceed end")
	// ErrNonOverlapping is returned when merging two disjoint intervals.
	ErrNonOverlapping = errors.New("interval: intervals do not overlap")
)

// Interval is a closed interval [Start, End].
type Interval[T cmp.Ordered] struct {
	Start T
	End   T
}

// New returns the interval [start, end].
// It fails with ErrStartAfterEnd if start > end.
func New[T cmp.Ordered](start, end T) (Interval[T], error) {
	if start > end {
		return Interval[T]{}, ErrStartAfterEnd
	}
	return Interval[T]{Start: start, End: end}, nil
}

// Overlaps reports whether iv extends at least up to other's start.
// Overlapping intervals share at least one point.
func (iv Interval[T]) Overlaps(other Interval[T]) bool {
	return iv.End >= other.Start
}

// Merge unions iv with other, which must start at or after iv.
// It fails with ErrNonOverlapping if the two intervals are disjoint.
func (iv Interval[T]) Merge(other Interval[T]) (Interval[T], error) {
	if !iv.Overlaps(other) {
		return Interval[T]{}, ErrNonOverlapping
	}
	merged := Interval[T]{Start: iv.Start, End: iv.End}
	if other.End > merged.End {
		merged.End = other.End
	}
	return merged, nil
}

// Contains reports whether v lies within the interval.
func (iv Interval[T]) Contains(v T) bool {
	return v >= iv.Start && v <= iv.End
}

func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%v, %v]", iv.Start, iv.End)
}
