package grid

import "math"

// Exact is a lossless mapping between two coordinate systems.
// Applying the reverse Exact mapping always restores the original value.
type Exact[S, T any] func(S) T

// Approximate is a best-effort mapping between systems without an exact
// correspondence. A round trip is not guaranteed to be the identity.
type Approximate[S, T any] func(S) T

// Tupler exposes the raw integer components of a coordinate.
type Tupler interface {
	Tuple() (int, int)
}

// ConvertBatchExact applies convert to every coordinate, preserving order.
func ConvertBatchExact[S, T any](coords []S, convert Exact[S, T]) []T {
	out := make([]T, len(coords))
	for i, c := range coords {
		out[i] = convert(c)
	}
	return out
}

// ConvertBatchApproximate applies convert to every coordinate, preserving order.
func ConvertBatchApproximate[S, T any](coords []S, convert Approximate[S, T]) []T {
	out := make([]T, len(coords))
	for i, c := range coords {
		out[i] = convert(c)
	}
	return out
}

// RoundTrip reports whether converting c there and back yields c.
func RoundTrip[S comparable, T any](c S, there Exact[S, T], back Exact[T, S]) bool {
	return back(there(c)) == c
}

// MeasureApproximateConversionError returns the Euclidean distance, in raw
// tuple space, between c and the result of converting it there and back.
// Zero means the pair round-trips c exactly.
func MeasureApproximateConversionError[S Tupler, T any](c S, there Approximate[S, T], back Approximate[T, S]) float64 {
	x1, y1 := c.Tuple()
	x2, y2 := back(there(c)).Tuple()
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}
