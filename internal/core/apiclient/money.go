package apiclient

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Money is a monetary amount. The backend transmits money as decimal
// strings ("113.00"); Money decodes both that and bare numbers, and always
// marshals back as a number.
type Money float64

// UnmarshalJSON accepts "113.00", 113, 113.5, "" and null.
func (m *Money) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = 0
		return nil
	}

	s := strings.Trim(string(trimmed), `"`)
	if s == "" {
		*m = 0
		return nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	*m = Money(value)
	return nil
}

// MarshalJSON writes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

// Float64 returns the amount as a float64.
func (m Money) Float64() float64 {
	return float64(m)
}

// String renders the amount with two decimal places for display and
// confirmation prompts.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}
