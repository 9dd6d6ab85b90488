package invoice

import (
	"math/rand"
	"testing"

	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name     string
		total    int64
		labor    int64
		paid     int64
		expected types.InvoiceStatus
	}{
		{"no payments", 120000, 100000, 0, types.InvoiceStatusUnpaid},
		{"below labor threshold", 120000, 100000, 60000, types.InvoiceStatusUnpaid},
		{"just below labor threshold", 120000, 100000, 99999, types.InvoiceStatusUnpaid},
		{"exactly labor threshold", 120000, 100000, 100000, types.InvoiceStatusPartiallyPaid},
		{"between labor and total", 120000, 100000, 105000, types.InvoiceStatusPartiallyPaid},
		{"exactly total", 120000, 100000, 120000, types.InvoiceStatusPaid},
		{"above total", 120000, 100000, 130000, types.InvoiceStatusPaid},
		{"labor equals total covered", 100000, 100000, 100000, types.InvoiceStatusPaid},
		{"labor equals total uncovered", 100000, 100000, 99999, types.InvoiceStatusUnpaid},
		{"zero labor unpaid covers threshold", 20000, 0, 0, types.InvoiceStatusPartiallyPaid},
		{"zero total", 0, 0, 0, types.InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(d(tt.total), d(tt.labor), d(tt.paid))
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestDeriveStatusProperties cross-checks the threshold rules against
// randomly drawn amounts with labor <= total.
func TestDeriveStatusProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		labor := decimal.NewFromInt(rng.Int63n(100000))
		total := labor.Add(decimal.NewFromInt(rng.Int63n(50000)))
		paid := decimal.NewFromInt(rng.Int63n(200000))

		got := DeriveStatus(total, labor, paid)
		switch {
		case paid.GreaterThanOrEqual(total):
			assert.Equal(t, types.InvoiceStatusPaid, got)
		case paid.GreaterThanOrEqual(labor):
			assert.Equal(t, types.InvoiceStatusPartiallyPaid, got)
		default:
			assert.Equal(t, types.InvoiceStatusUnpaid, got)
		}
	}
}

func TestApplyPaymentSum(t *testing.T) {
	inv := &Invoice{
		Total:       decimal.NewFromInt(120000),
		LaborAmount: decimal.NewFromInt(100000),
	}

	inv.ApplyPaymentSum(decimal.NewFromInt(60000))
	assert.Equal(t, types.InvoiceStatusUnpaid, inv.InvoiceStatus)
	assert.True(t, inv.AmountRemaining.Equal(decimal.NewFromInt(60000)))

	inv.ApplyPaymentSum(decimal.NewFromInt(105000))
	assert.Equal(t, types.InvoiceStatusPartiallyPaid, inv.InvoiceStatus)
	assert.True(t, inv.AmountRemaining.Equal(decimal.NewFromInt(15000)))

	// An overpayment never drives the remaining balance negative.
	inv.ApplyPaymentSum(decimal.NewFromInt(130000))
	assert.Equal(t, types.InvoiceStatusPaid, inv.InvoiceStatus)
	assert.True(t, inv.AmountRemaining.IsZero())
}
