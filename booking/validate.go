package booking

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinDuration = 30 * time.Minute
	MaxDuration = 480 * time.Minute

	vidMin = 100000
	vidMax = 999999
)

var (
	ErrRangeOrder = errors.New("start time must be before end time")
	ErrTooShort   = errors.New("booking must be at least 30 minutes long")
	ErrTooLong    = errors.New("booking cannot exceed 8 hours")

	ErrVIDRequired = errors.New("VID is required")
	ErrVIDDigits   = errors.New("VID must contain only numbers")
	ErrVIDRange    = errors.New("VID must be a 6-digit number")
)

var positionRe = regexp.MustCompile(`^[A-Z]{4}_[A-Z]{2,3}$`)

// ValidateTimeRange checks the ordering and duration rules for a
// booking window. Equal start and end is an ordering error, not a
// too-short one.
func ValidateTimeRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrRangeOrder
	}
	d := end.Sub(start)
	if d < MinDuration {
		return ErrTooShort
	}
	if d > MaxDuration {
		return ErrTooLong
	}
	return nil
}

// NormalizePosition returns the canonical upper-cased form of a
// position identifier.
func NormalizePosition(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidPosition reports whether the text matches the ICAO_TYPE shape
// (e.g. SBGR_APP, SBBR_TWR) after trimming and upper-casing.
func IsValidPosition(s string) bool {
	return positionRe.MatchString(NormalizePosition(s))
}

// IsValidVID reports whether the text is a valid VID: exactly six
// digits in [100000, 999999].
func IsValidVID(s string) bool {
	return VIDError(s) == nil
}

// VIDError validates a VID and reports the first rule it breaks, in
// the order the original input surfaced them: required, digits only,
// then the 6-digit range.
func VIDError(s string) error {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return ErrVIDRequired
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return ErrVIDDigits
		}
	}
	if len(clean) != 6 {
		return ErrVIDRange
	}
	n, err := strconv.Atoi(clean)
	if err != nil || n < vidMin || n > vidMax {
		return ErrVIDRange
	}
	return nil
}

// NormalizeVID returns the trimmed VID text.
func NormalizeVID(s string) string {
	return strings.TrimSpace(s)
}
