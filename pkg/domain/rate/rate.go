// Package rate defines user-scoped conversion rates between currency pairs
// and the derivation of effective rates from a transfer's amount pair.
package rate

import (
	"fmt"
	"time"

	"finbook/pkg/currency"
	"finbook/pkg/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits a stored rate carries.
const Scale = 6

var (
	// ErrRateNotPositive is returned when a rate is zero or negative.
	ErrRateNotPositive = fmt.Errorf("%w: rate must be positive", domain.ErrValidation)

	// ErrSamePair is returned when from- and to-currency are identical.
	ErrSamePair = fmt.Errorf("%w: from and to currency must differ", domain.ErrValidation)

	// ErrUnsupportedCurrency is returned for codes outside the supported set.
	ErrUnsupportedCurrency = fmt.Errorf("%w: unsupported currency", domain.ErrValidation)
)

// ConversionRate is a user-owned directed rate for an ordered currency pair.
// At most one rate exists per (user, from, to); the store enforces that.
// The posting engine never mutates these records.
type ConversionRate struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	From      currency.Code
	To        currency.Code
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates and builds a ConversionRate.
func New(userID uuid.UUID, from, to currency.Code, r decimal.Decimal) (*ConversionRate, error) {
	if !currency.IsSupported(from) || !currency.IsSupported(to) {
		return nil, ErrUnsupportedCurrency
	}
	if from == to {
		return nil, ErrSamePair
	}
	if !r.IsPositive() {
		return nil, ErrRateNotPositive
	}
	return &ConversionRate{
		ID:        uuid.New(),
		UserID:    userID,
		From:      from,
		To:        to,
		Rate:      r.Round(Scale),
		CreatedAt: time.Now(),
	}, nil
}

// Pair holds the two effective rates snapshotted on a cross-currency
// transfer: Source converts destination units back to source units
// (sourceAmount / destinationAmount) and Destination is its reciprocal.
type Pair struct {
	Source      decimal.Decimal
	Destination decimal.Decimal
}

// Derive computes the effective rate pair from the caller-supplied amounts of
// a cross-currency transfer. No stored ConversionRate is consulted; the
// amount pair alone determines the rates, which makes the conversion
// auditable from the transaction row itself.
//
// Both amounts are in minor units of currencies with equal minor-unit
// precision, so the minor-unit quotient equals the main-unit quotient. When
// either currency is precision-sensitive the rates are rounded half-up to
// six fractional digits. Every supported cross pair currently includes USD
// or EUR, so in practice all derived rates carry at most six digits and fit
// the numeric(19,6) rate columns exactly. If the supported set ever grows a
// pair of non-sensitive currencies, their rates skip the rounding and carry
// the quotient at decimal.DivisionPrecision digits instead.
func Derive(sourceMinor, destMinor int64, sourceCur, destCur currency.Code) (Pair, error) {
	if sourceMinor <= 0 || destMinor <= 0 {
		return Pair{}, fmt.Errorf("%w: amounts must be positive", domain.ErrValidation)
	}
	src := decimal.NewFromInt(sourceMinor)
	dst := decimal.NewFromInt(destMinor)

	p := Pair{
		Source:      src.Div(dst),
		Destination: dst.Div(src),
	}
	if currency.IsPrecisionSensitive(sourceCur) || currency.IsPrecisionSensitive(destCur) {
		// decimal.Round rounds half away from zero, which for positive
		// rates is exactly round-half-up.
		p.Source = p.Source.Round(Scale)
		p.Destination = p.Destination.Round(Scale)
	}
	return p, nil
}
