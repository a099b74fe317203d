package currency_test

import (
	"testing"

	"finbook/pkg/currency"

	"github.com/stretchr/testify/assert"
)

func TestIsValidFormat(t *testing.T) {
	t.Parallel()
	cases := []struct {
		code currency.Code
		want bool
	}{
		{"USD", true},
		{"DZD", true},
		{"usd", false},
		{"US", false},
		{"USDD", false},
		{"U5D", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.code.IsValidFormat(), "code %q", c.code)
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	for _, code := range currency.Supported() {
		assert.True(t, currency.IsSupported(code))
	}
	assert.False(t, currency.IsSupported("GBP"))
	assert.False(t, currency.IsSupported("JPY"))
}

func TestIsPrecisionSensitive(t *testing.T) {
	t.Parallel()
	assert.True(t, currency.IsPrecisionSensitive(currency.USD))
	assert.True(t, currency.IsPrecisionSensitive(currency.EUR))
	assert.False(t, currency.IsPrecisionSensitive(currency.DZD))
}
