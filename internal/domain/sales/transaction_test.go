package sales

import (
	"strings"
	"testing"
	"time"

	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSaleDate() time.Time {
	return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func TestNewSalesTransaction(t *testing.T) {
	t.Run("computes total and outstanding", func(t *testing.T) {
		tx, err := NewSalesTransaction(
			"JL-20260831-001", "Budi", "0812345678", "3 ekor domba jantan",
			3, decimal.NewFromInt(1500000), decimal.NewFromInt(2000000),
			validSaleDate(), "", "admin",
		)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(4500000).Equal(tx.TotalPrice))
		assert.True(t, decimal.NewFromInt(2500000).Equal(tx.Outstanding))
		assert.False(t, tx.IsSettled())
		assert.Equal(t, "admin", tx.RecordedBy)
	})

	t.Run("full payment settles", func(t *testing.T) {
		tx, err := NewSalesTransaction(
			"JL-20260831-002", "Siti", "", "",
			2, decimal.NewFromInt(1000000), decimal.NewFromInt(2000000),
			validSaleDate(), "", "admin",
		)
		require.NoError(t, err)
		assert.True(t, tx.IsSettled())
	})

	t.Run("overpayment clamps outstanding to zero", func(t *testing.T) {
		tx, err := NewSalesTransaction(
			"JL-20260831-003", "Siti", "", "",
			1, decimal.NewFromInt(1000000), decimal.NewFromInt(1500000),
			validSaleDate(), "", "admin",
		)
		require.NoError(t, err)
		assert.True(t, tx.Outstanding.IsZero())
	})

	t.Run("zero unit price is a valid giveaway", func(t *testing.T) {
		tx, err := NewSalesTransaction(
			"JL-20260831-004", "Panti Asuhan", "", "hibah",
			1, decimal.Zero, decimal.Zero,
			validSaleDate(), "", "admin",
		)
		require.NoError(t, err)
		assert.True(t, tx.TotalPrice.IsZero())
		assert.True(t, tx.IsSettled())
	})

	validationCases := []struct {
		name    string
		mutate  func() (*SalesTransaction, error)
		errCode string
	}{
		{
			name: "empty receipt number",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("", "Budi", "", "", 1, decimal.NewFromInt(1), decimal.Zero, validSaleDate(), "", "")
			},
			errCode: "INVALID_RECEIPT_NUMBER",
		},
		{
			name: "receipt number over 50 chars",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction(strings.Repeat("X", 51), "Budi", "", "", 1, decimal.NewFromInt(1), decimal.Zero, validSaleDate(), "", "")
			},
			errCode: "INVALID_RECEIPT_NUMBER",
		},
		{
			name: "empty buyer",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("JL-20260831-001", "", "", "", 1, decimal.NewFromInt(1), decimal.Zero, validSaleDate(), "", "")
			},
			errCode: "INVALID_BUYER",
		},
		{
			name: "zero quantity",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("JL-20260831-001", "Budi", "", "", 0, decimal.NewFromInt(1), decimal.Zero, validSaleDate(), "", "")
			},
			errCode: "INVALID_QUANTITY",
		},
		{
			name: "negative unit price",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("JL-20260831-001", "Budi", "", "", 1, decimal.NewFromInt(-1), decimal.Zero, validSaleDate(), "", "")
			},
			errCode: "INVALID_UNIT_PRICE",
		},
		{
			name: "negative paid amount",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("JL-20260831-001", "Budi", "", "", 1, decimal.NewFromInt(1), decimal.NewFromInt(-1), validSaleDate(), "", "")
			},
			errCode: "INVALID_PAID_AMOUNT",
		},
		{
			name: "zero date",
			mutate: func() (*SalesTransaction, error) {
				return NewSalesTransaction("JL-20260831-001", "Budi", "", "", 1, decimal.NewFromInt(1), decimal.Zero, time.Time{}, "", "")
			},
			errCode: "INVALID_DATE",
		},
	}

	for _, tt := range validationCases {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := tt.mutate()
			assert.Nil(t, tx)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.errCode, domainErr.Code)
		})
	}
}

func TestSalesTransaction_WithReceiptNumber(t *testing.T) {
	tx, err := NewSalesTransaction(
		"JL-20260831-001", "Budi", "", "",
		1, decimal.NewFromInt(1000000), decimal.Zero,
		validSaleDate(), "", "admin",
	)
	require.NoError(t, err)

	clone := tx.WithReceiptNumber("JL-20260831-002")

	assert.Equal(t, "JL-20260831-002", clone.ReceiptNumber)
	assert.Equal(t, "JL-20260831-001", tx.ReceiptNumber, "original must not change")
	assert.True(t, tx.TotalPrice.Equal(clone.TotalPrice))
	assert.Equal(t, tx.BuyerName, clone.BuyerName)
}
