package models

import "fmt"

// InvalidChartError reports a chart that fails structural validation:
// missing planets, a planet without a sign, malformed houses or aspects.
// Interpretation halts immediately when normalization returns it.
type InvalidChartError struct {
	// Reason describes what failed validation
	Reason string
}

func (e *InvalidChartError) Error() string {
	return fmt.Sprintf("invalid chart: %s", e.Reason)
}

// NewInvalidChartError creates an InvalidChartError with a formatted reason.
func NewInvalidChartError(format string, args ...any) *InvalidChartError {
	return &InvalidChartError{Reason: fmt.Sprintf(format, args...)}
}

// EphemerisError reports that the external chart computation could not
// resolve the required planets or houses for a birth instant/location.
type EphemerisError struct {
	// Op is the failed operation (e.g. "compute")
	Op string

	// Reason describes the failure
	Reason string

	// Err is the underlying error, if any
	Err error
}

func (e *EphemerisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ephemeris %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("ephemeris %s: %s", e.Op, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *EphemerisError) Unwrap() error {
	return e.Err
}
