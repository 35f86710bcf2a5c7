package sales

import (
	"context"

	"github.com/dombastis/backend/internal/domain/shared/valueobject"
)

// Summary aggregates the whole ledger for the sales overview.
// Revenue is carried as Money in the system currency.
type Summary struct {
	TotalRevenue   valueobject.Money `json:"total_revenue"`
	TotalUnitsSold int64             `json:"total_units_sold"`
	CountUnpaid    int64             `json:"count_unpaid"`
}

// Repository defines persistence for the sales ledger.
// Receipt-number uniqueness is enforced by the store's unique constraint;
// Insert surfaces a collision as shared.ErrDuplicateReceipt.
type Repository interface {
	// Insert records a sale and assigns its ID. Returns
	// shared.ErrDuplicateReceipt when the receipt number already exists.
	Insert(ctx context.Context, tx *SalesTransaction) error

	// FindByID finds a sale by ID; returns shared.ErrNotFound if absent
	FindByID(ctx context.Context, id int64) (*SalesTransaction, error)

	// FindAll lists all sales ordered by date descending, then ID descending
	FindAll(ctx context.Context) ([]SalesTransaction, error)

	// Delete removes a sale unconditionally. The deleted receipt number is
	// not reclaimed or renumbered.
	Delete(ctx context.Context, id int64) error

	// CountByReceiptPrefix counts sales whose receipt number begins with
	// the given prefix
	CountByReceiptPrefix(ctx context.Context, prefix string) (int64, error)

	// Count counts all sales ever recorded
	Count(ctx context.Context) (int64, error)

	// Aggregate computes the ledger summary over all rows
	Aggregate(ctx context.Context) (Summary, error)
}
