package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"20000000", "$20,000,000.00"},
		{"2164000", "$2,164,000.00"},
		{"-1234567.891", "-$1,234,567.89"},
		{"-0.001", "$0.00"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(stddec.RequireFromString(c.in))
		if got := m.Format(); got != c.want {
			t.Fatalf("Format(%s) got %s want %s", c.in, got, c.want)
		}
	}
}

func TestPercentHelpers(t *testing.T) {
	if got := PercentOf(stddec.NewFromInt(200000), stddec.NewFromInt(25)); !got.Equal(stddec.NewFromInt(50000)) {
		t.Fatalf("PercentOf got %s", got)
	}
	if got := Ratio(stddec.NewFromInt(1), stddec.NewFromInt(4)); !got.Equal(stddec.NewFromInt(25)) {
		t.Fatalf("Ratio got %s", got)
	}
	if got := Ratio(stddec.NewFromInt(1), stddec.Zero); !got.IsZero() {
		t.Fatalf("Ratio with zero denominator should be zero, got %s", got)
	}
	if got := NonNegative(stddec.NewFromInt(-3)); !got.IsZero() {
		t.Fatalf("NonNegative got %s", got)
	}
}
