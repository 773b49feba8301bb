package domain

import "errors"

// Sentinel errors for the detection pipeline. Callers match with errors.Is;
// stages wrap these with %w and add context.
var (
	// ErrDecode marks a malformed or truncated image payload.
	ErrDecode = errors.New("image decode failed")

	// ErrUnsupportedFormat marks bytes no registered decoder recognizes.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrDimensionMismatch marks a frame/mask shape disagreement.
	ErrDimensionMismatch = errors.New("frame and mask dimensions disagree")

	// ErrModelUnavailable marks a model artifact that could not be loaded at
	// startup. It selects the fallback provider; it never fails a request.
	ErrModelUnavailable = errors.New("model artifact unavailable")

	// ErrInvalidMetrics marks NaN or infinite derived metrics.
	ErrInvalidMetrics = errors.New("invalid metrics")

	// ErrTimeout marks a boundary-imposed deadline expiring mid-request.
	ErrTimeout = errors.New("detection timed out")
)
