package astro

import "fmt"

// Batch calls take slices where every position- or time-dependent argument is
// either length 1 (a scalar broadcast across the series) or the full series
// length. Scalar calls are the length-1 case unwrapped at the boundary.

// broadcastFloats expands a length-1 slice to n elements, passes a length-n
// slice through, and rejects anything else. Each element is checked finite.
func broadcastFloats(name string, vals []float64, n int) ([]float64, error) {
	switch len(vals) {
	case n:
		for _, v := range vals {
			if err := checkFinite(name, v); err != nil {
				return nil, err
			}
		}
		return vals, nil
	case 1:
		if err := checkFinite(name, vals[0]); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	default:
		return nil, &ValidationError{
			Arg:    name,
			Reason: fmt.Sprintf("series length %d does not match 1 or %d", len(vals), n),
		}
	}
}
