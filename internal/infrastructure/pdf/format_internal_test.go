package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatQuantity(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"25":       "25",
		"1500":     "1.500",
		"1000000":  "1.000.000",
		"2.50000":  "2,5",
		"-12345.5": "-12.345,5",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatQuantity(decimal.RequireFromString(in)), in)
	}
}
