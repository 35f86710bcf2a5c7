package sales

import (
	"time"

	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesTransaction represents one recorded sale with a unique receipt
// number and a derived outstanding balance.
type SalesTransaction struct {
	shared.BaseEntity
	ReceiptNumber string          `json:"receipt_number"`
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone"`
	Description   string          `json:"description"` // free text describing the animals sold
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Paid          decimal.Decimal `json:"paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
	RecordedBy    string          `json:"recorded_by"`
}

// NewSalesTransaction creates a sale, computing total and outstanding
// balance from quantity, unit price and the amount paid
func NewSalesTransaction(
	receiptNumber string,
	buyerName string,
	buyerPhone string,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
	paid decimal.Decimal,
	date time.Time,
	note string,
	recordedBy string,
) (*SalesTransaction, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if len(receiptNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot exceed 50 characters")
	}
	if buyerName == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	if paid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	return &SalesTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: receiptNumber,
		BuyerName:     buyerName,
		BuyerPhone:    buyerPhone,
		Description:   description,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    total,
		Paid:          paid,
		Outstanding:   Balance(total, paid),
		Date:          date,
		Note:          note,
		RecordedBy:    recordedBy,
	}, nil
}

// IsSettled reports whether the sale is fully paid
func (t *SalesTransaction) IsSettled() bool {
	return t.Outstanding.IsZero()
}

// WithReceiptNumber returns a copy of the transaction carrying a different
// receipt number. Used when a minted candidate collides and is regenerated.
func (t *SalesTransaction) WithReceiptNumber(receiptNumber string) *SalesTransaction {
	clone := *t
	clone.ReceiptNumber = receiptNumber
	return &clone
}
