package astro

import (
	"fmt"
	"math"
)

// ValidationError reports an argument with an unusable representation:
// a non-finite number, an unsupported time value, or a batch slice whose
// length matches neither 1 nor the series length.
type ValidationError struct {
	Arg    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}

// DomainError reports a finite value outside an argument's valid range,
// such as a declination or latitude beyond ±90°.
type DomainError struct {
	Arg   string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s out of range: %g", e.Arg, e.Value)
}

// checkFinite rejects NaN and ±Inf.
func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Arg: name, Reason: fmt.Sprintf("not a finite number (%v)", v)}
	}
	return nil
}

// checkRange rejects finite values outside [min, max].
func checkRange(name string, v, min, max float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v < min || v > max {
		return &DomainError{Arg: name, Value: v}
	}
	return nil
}
