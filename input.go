package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrExit is returned when the operator typed "exit". It is a request to stop
// the whole program, not a failure.
var ErrExit = errors.New("exit requested")

// ValidationError reports a raw input that cannot be accepted for an account.
type ValidationError struct {
	Input      string
	Reason     string
	Min, Max   int64
	OutOfRange bool
}

func (e *ValidationError) Error() string {
	if e.OutOfRange {
		return fmt.Sprintf("%q is out of range: the number should be between %s and %s", e.Input, FormatInteger(e.Min), FormatInteger(e.Max))
	}
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// ParseInput validates a raw line typed by the operator and returns its
// integer value.
//
// Thousands separators are dropped first, then the input must be made of
// decimal digits only, without leading zeros, and fall within [min, max].
// A case insensitive "exit" returns ErrExit.
func ParseInput(raw string, min, max int64) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if strings.EqualFold(s, "exit") {
		return 0, ErrExit
	}
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &ValidationError{Input: raw, Reason: "Input must contain only digits.", Min: min, Max: max}
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, &ValidationError{Input: raw, Reason: "Leading zeros are not allowed.", Min: min, Max: max}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// only digits, so the only possible failure is an overflow.
		return 0, &ValidationError{Input: raw, Min: min, Max: max, OutOfRange: true}
	}
	if v < min || v > max {
		return 0, &ValidationError{Input: raw, Min: min, Max: max, OutOfRange: true}
	}
	return v, nil
}

// Console is the operator's terminal as seen by the update step.
type Console interface {
	// Prompt displays message and returns the line typed in.
	Prompt(message string) (string, error)
	// Display shows a line of text.
	Display(text string)
}

// PromptMessage is the question asked for account a.
func PromptMessage(a Account) string {
	return fmt.Sprintf("Please enter the number for %s. The number should not contain any decimal places. The number should be between %s and %s: ",
		a.Name, FormatInteger(a.Min), FormatInteger(a.Max))
}

// Ask prompts for account a until the operator types a valid value.
//
// Validation failures are displayed and asked again, they are never returned.
// ErrExit and console errors are returned as is.
func Ask(c Console, a Account) (int64, error) {
	for {
		raw, err := c.Prompt(PromptMessage(a))
		if err != nil {
			return 0, err
		}
		v, err := ParseInput(raw, a.Min, a.Max)
		var verr *ValidationError
		switch {
		case err == nil:
			return v, nil
		case errors.As(err, &verr) && verr.OutOfRange:
			c.Display(fmt.Sprintf("The number should be between %s and %s. The number should not contain any decimal places. Please try again.",
				FormatInteger(a.Min), FormatInteger(a.Max)))
		case errors.As(err, &verr):
			c.Display("Invalid input: " + verr.Reason)
		default:
			return 0, err
		}
	}
}
