package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/oakmall/consignment-ledger/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"1234567.89", 123456789},
			{"0.00", 0},
			{"0", 0},
			{"50.", 5000},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestParseSignedAmount(t *testing.T) {
	cents, err := ParseSignedAmount("-12.34")
	assert.NoError(t, err)
	assert.Equal(t, int64(-1234), cents)

	cents, err = ParseSignedAmount("12.34")
	assert.NoError(t, err)
	assert.Equal(t, int64(1234), cents)

	_, err = ParseSignedAmount("-abc")
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestParsePercent(t *testing.T) {
	t.Run("Valid percentages", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"13", 1300},
			{"7", 700},
			{"7.25", 725},
			{"0", 0},
			{"100", 10000},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				rate, err := ParsePercent(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, rate)
			})
		}
	})

	t.Run("Invalid percentages", func(t *testing.T) {
		_, err := ParsePercent("abc")
		assert.ErrorIs(t, err, errs.ErrInvalidRate)

		_, err = ParsePercent("100.01")
		assert.ErrorIs(t, err, errs.ErrInvalidRate)
	})
}

func TestPercentOf(t *testing.T) {
	testCases := []struct {
		name     string
		amount   int64
		rate     int64
		expected int64
	}{
		{"13 percent of 10.00", 1000, 1300, 130},
		{"13 percent of 100.00", 10000, 1300, 1300},
		{"rounds half up", 50, 1300, 7},         // 6.5 cents
		{"rounds down below half", 34, 1300, 4}, // 4.42 cents
		{"rounds up above half", 38, 1300, 5},   // 4.94 cents
		{"zero rate", 1000, 0, 0},
		{"zero amount", 0, 1300, 0},
		{"negative amount rounds away from zero", -50, 1300, -7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PercentOf(tc.amount, tc.rate))
		})
	}
}

func TestFormatCents(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{-1234, "-12.34"},
		{99, "0.99"},
		{100, "1.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCents(tc.cents))
		})
	}
}
