package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("domain: price must be a euro-prefixed amount like \"€15\" or \"€112.50\"")

// priceRe accepts the wire convention inherited from the listing flow: a
// euro sign followed by a whole amount and an optional two-digit fraction.
var priceRe = regexp.MustCompile(`^€(\d+)(?:\.(\d{2}))?$`)

// Price is a euro amount in integer cents. On the wire it is serialized
// as a currency-prefixed string ("€15", "€112.50").
type Price int64

// ParsePrice parses a euro string into cents. Non-conforming strings are
// rejected; callers translate the failure into a FormatError.
func ParsePrice(s string) (Price, error) {
	m := priceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	cents := whole * 100
	if m[2] != "" {
		frac, _ := strconv.ParseInt(m[2], 10, 64)
		cents += frac
	}
	return Price(cents), nil
}

// String formats the amount back into the wire convention. Whole euro
// amounts omit the fraction, matching the listing flow's "€15" style.
func (p Price) String() string {
	if p%100 == 0 {
		return fmt.Sprintf("€%d", p/100)
	}
	return fmt.Sprintf("€%d.%02d", p/100, p%100)
}

func (p Price) Cents() int64 { return int64(p) }

// Multiply scales the amount by a whole factor (e.g. a day count).
func (p Price) Multiply(times int) Price {
	return p * Price(times)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*p = 0
		return nil
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
