// Package currency defines the currency codes supported by finbook and the
// precision policy applied to derived conversion rates.
package currency

// Code represents an ISO 4217 currency code (e.g., "USD", "EUR").
type Code string

// Supported currency codes.
const (
	USD Code = "USD"
	EUR Code = "EUR"
	DZD Code = "DZD"
)

// DefaultCode is the currency assigned to accounts when none is specified.
var DefaultCode = USD

// supported is the closed set of currencies an account can be denominated in.
// Extending the set is a schema-level decision, not a runtime one.
var supported = map[Code]struct{}{
	USD: {},
	EUR: {},
	DZD: {},
}

// precisionSensitive holds the currencies whose derived conversion rates are
// rounded half-up to six fractional digits. Rates for other pairs are stored
// at full division precision.
var precisionSensitive = map[Code]struct{}{
	USD: {},
	EUR: {},
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// IsValidFormat reports whether the code is three uppercase ASCII letters.
func (c Code) IsValidFormat() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsSupported reports whether the code belongs to the supported set.
func IsSupported(c Code) bool {
	_, ok := supported[c]
	return ok
}

// IsPrecisionSensitive reports whether derived rates touching this currency
// must be rounded to six fractional digits.
func IsPrecisionSensitive(c Code) bool {
	_, ok := precisionSensitive[c]
	return ok
}

// Decimals returns the number of fractional digits for the currency's minor
// unit. All supported currencies use two.
func Decimals(Code) int {
	return 2
}

// Supported returns the supported codes in a stable order, for API responses.
func Supported() []Code {
	return []Code{USD, EUR, DZD}
}
