// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// AdvisorError is a structured error with context.
type AdvisorError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	ItemID      string   `json:"item_id,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *AdvisorError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("[%s] %s: %s (item: %s)", e.Severity, e.Code, e.Message, e.ItemID)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeNegativeVolume = "NEGATIVE_VOLUME"
	ErrCodeContactSales   = "CONTACT_SALES"
	ErrCodeInvalidProfile = "INVALID_PROFILE"
	ErrCodeBadRefData     = "BAD_REFERENCE_DATA"
)

// NewNegativeVolumeError rejects a negative monthly volume. This is a
// caller contract violation, never coerced to zero.
func NewNegativeVolumeError(volume int64) *AdvisorError {
	return &AdvisorError{
		Code:        ErrCodeNegativeVolume,
		Message:     fmt.Sprintf("monthly volume must be >= 0, got %d", volume),
		Severity:    SeverityError,
		Recoverable: false,
	}
}

// NewContactSalesError marks a profile whose pricing is not computable.
func NewContactSalesError(itemID string) *AdvisorError {
	return &AdvisorError{
		Code:        ErrCodeContactSales,
		Message:     "profile has no computable tiers, contact sales",
		Severity:    SeverityInfo,
		ItemID:      itemID,
		Recoverable: true,
	}
}

// NewInvalidProfileError flags a rate card that violates tier invariants.
func NewInvalidProfileError(itemID, reason string) *AdvisorError {
	return &AdvisorError{
		Code:        ErrCodeInvalidProfile,
		Message:     fmt.Sprintf("invalid pricing profile: %s", reason),
		Severity:    SeverityWarning,
		ItemID:      itemID,
		Recoverable: true,
	}
}

// NewBadRefDataError flags unusable reference data from a source.
func NewBadRefDataError(reason string) *AdvisorError {
	return &AdvisorError{
		Code:        ErrCodeBadRefData,
		Message:     reason,
		Severity:    SeverityError,
		Recoverable: false,
	}
}
