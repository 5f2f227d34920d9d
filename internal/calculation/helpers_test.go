package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// useFixedClock pins the engine clock to testNow for the duration of the test
func useFixedClock(t *testing.T) {
	t.Helper()
	SetNowFunc(func() time.Time { return testNow })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, label string) {
	t.Helper()
	assert.Truef(t, expected.Equal(actual), "%s: expected %s, got %s", label, expected.String(), actual.String())
}
