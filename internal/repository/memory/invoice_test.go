package memory

import (
	"context"
	"testing"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(id, number string) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            id,
		InvoiceNumber: number,
		ClientID:      "client-1",
		IssueDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		InvoiceStatus: types.InvoiceStatusUnpaid,
		Version:       1,
		LineItems: []*invoice.LineItem{
			{
				ID:           id + "_line",
				InvoiceID:    id,
				LineItemType: types.InvoiceLineItemTypeLabor,
				Description:  "Recurring services",
				Amount:       decimal.NewFromInt(1000),
			},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	}
	inv.ComputeTotals()
	inv.AmountRemaining = inv.Total
	return inv
}

func TestInvoiceStoreRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	store := NewInvoiceStore()

	require.NoError(t, store.Create(ctx, testInvoice("inv_1", "INV-202501-00001")))

	err := store.Create(ctx, testInvoice("inv_2", "INV-202501-00001"))
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))

	require.NoError(t, store.Create(ctx, testInvoice("inv_2", "INV-202501-00002")))
}

func TestInvoiceStoreVersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewInvoiceStore()
	require.NoError(t, store.Create(ctx, testInvoice("inv_1", "INV-202501-00001")))

	first, err := store.Get(ctx, "inv_1")
	require.NoError(t, err)
	second, err := store.Get(ctx, "inv_1")
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, first))
	assert.Equal(t, 2, first.Version)

	err = store.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, ierr.IsVersionConflict(err))
}

func TestInvoiceStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewInvoiceStore()
	require.NoError(t, store.Create(ctx, testInvoice("inv_1", "INV-202501-00001")))

	got, err := store.Get(ctx, "inv_1")
	require.NoError(t, err)
	got.AppendReminderNote(time.Now(), "mutated")
	got.LineItems[0].Amount = decimal.NewFromInt(999999)

	fresh, err := store.Get(ctx, "inv_1")
	require.NoError(t, err)
	assert.Empty(t, fresh.ReminderNotes)
	assert.True(t, fresh.LineItems[0].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestInvoiceStoreNextInvoiceSequence(t *testing.T) {
	ctx := context.Background()
	store := NewInvoiceStore()

	for want := 1; want <= 3; want++ {
		seq, err := store.NextInvoiceSequence(ctx, "202501")
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	// Each period has its own sequence.
	seq, err := store.NextInvoiceSequence(ctx, "202502")
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestInvoiceStoreListOverdueCandidates(t *testing.T) {
	ctx := context.Background()
	store := NewInvoiceStore()

	overdue := testInvoice("inv_1", "INV-202501-00001")
	require.NoError(t, store.Create(ctx, overdue))

	paid := testInvoice("inv_2", "INV-202501-00002")
	paid.ApplyPaymentSum(paid.Total)
	require.NoError(t, store.Create(ctx, paid))

	future := testInvoice("inv_3", "INV-202501-00003")
	future.DueDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, future))

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	candidates, err := store.ListOverdueCandidates(ctx, now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "inv_1", candidates[0].ID)
}
