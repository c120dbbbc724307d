package core

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// DegeneracyThreshold is the detuning magnitude, in GHz, below which a
// parameter set counts as resonant. Realistic qubit-resonator detunings
// sit near 0.8 GHz, so anything at the kHz scale is a resonance.
const DegeneracyThreshold = 1e-6

// ConfigurationError reports an invalid chip configuration: a wrong-length
// parameter list, a non-positive qubit count, malformed dims, or an
// unknown family or noise label. Detected at construction, never retried.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid chip configuration/reason:%s", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Err: fmt.Errorf(format, args...)}
}

// CombineConfigurationErrors folds every collected validation failure into
// one ConfigurationError so the caller sees all offending parameters at
// once. Returns nil when errs carries no error.
func CombineConfigurationErrors(errs ...error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	return &ConfigurationError{Err: combined}
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// DegeneracyError reports a derivation divisor within DegeneracyThreshold
// of zero. The perturbative formulas divide by detunings, so a
// near-resonant chip must fail loudly instead of producing inf or NaN.
type DegeneracyError struct {
	Detuning string
	Indices  []int
	Value    float64
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("near-degenerate detuning %s at sites %v: %g GHz is within the %g GHz threshold",
		e.Detuning, e.Indices, e.Value, DegeneracyThreshold)
}

func NewDegeneracyError(detuning string, value float64, indices ...int) *DegeneracyError {
	return &DegeneracyError{
		Detuning: detuning,
		Indices:  indices,
		Value:    value,
	}
}

func IsDegeneracyError(err error) bool {
	var de *DegeneracyError
	return errors.As(err, &de)
}
