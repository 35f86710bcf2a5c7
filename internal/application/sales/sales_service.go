package sales

import (
	"context"
	"errors"
	"time"

	"github.com/dombastis/backend/internal/domain/sales"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesService records and queries sales transactions. Receipt numbers are
// minted with a read-then-format scheme: count today's receipts, take
// count+1. Two concurrent sales can mint the same candidate, so the unique
// constraint on the receipt column is the source of truth and a collision
// on a minted number is retried exactly once.
type SalesService struct {
	ledger sales.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSalesService creates a new SalesService
func NewSalesService(ledger sales.Repository, logger *zap.Logger) *SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesService{
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// RecordSaleRequest carries the details of a sale to record.
// ReceiptNumber is optional; when empty a number is minted for today.
type RecordSaleRequest struct {
	ReceiptNumber string
	BuyerName     string
	BuyerPhone    string
	Description   string
	Quantity      int
	UnitPrice     decimal.Decimal
	Paid          decimal.Decimal
	Date          time.Time
	Note          string
}

// RecordSale durably records a sale with a unique receipt number, or fails
// leaving the ledger untouched. A duplicate collision on a minted number is
// regenerated and retried once; a collision on a caller-supplied number is
// surfaced immediately, since silently issuing a different receipt than the
// one requested would be worse than failing.
func (s *SalesService) RecordSale(ctx context.Context, actor string, req RecordSaleRequest) (*sales.SalesTransaction, error) {
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	minted := req.ReceiptNumber == ""
	receipt := req.ReceiptNumber
	if minted {
		var err error
		if receipt, err = s.mintReceiptNumber(ctx); err != nil {
			return nil, err
		}
	}

	tx, err := sales.NewSalesTransaction(
		receipt, req.BuyerName, req.BuyerPhone, req.Description,
		req.Quantity, req.UnitPrice, req.Paid, date, req.Note, actor,
	)
	if err != nil {
		return nil, err
	}

	err = s.ledger.Insert(ctx, tx)
	if errors.Is(err, shared.ErrDuplicateReceipt) && minted {
		s.logger.Warn("receipt number collision, regenerating once",
			zap.String("receipt_number", tx.ReceiptNumber),
		)
		receipt, mintErr := s.mintReceiptNumber(ctx)
		if mintErr != nil {
			return nil, mintErr
		}
		tx = tx.WithReceiptNumber(receipt)
		err = s.ledger.Insert(ctx, tx)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.Int64("sale_id", tx.ID),
		zap.String("receipt_number", tx.ReceiptNumber),
		zap.String("buyer", tx.BuyerName),
		zap.String("total", tx.TotalPrice.String()),
	)
	return tx, nil
}

// mintReceiptNumber produces the next candidate receipt number for today.
// If the date-scoped count fails, it falls back to the global running count
// so a sale is not blocked by the prefix query alone.
func (s *SalesService) mintReceiptNumber(ctx context.Context) (string, error) {
	today := s.now()
	count, err := s.ledger.CountByReceiptPrefix(ctx, sales.ReceiptDatePrefix(today))
	if err != nil {
		s.logger.Warn("date-scoped receipt count failed, falling back to global count", zap.Error(err))
		if count, err = s.ledger.Count(ctx); err != nil {
			return "", err
		}
	}
	return sales.FormatReceiptNumber(today, int(count)+1), nil
}

// GetSale fetches one sale by ID
func (s *SalesService) GetSale(ctx context.Context, id int64) (*sales.SalesTransaction, error) {
	return s.ledger.FindByID(ctx, id)
}

// ListSales lists all sales, newest first
func (s *SalesService) ListSales(ctx context.Context) ([]sales.SalesTransaction, error) {
	return s.ledger.FindAll(ctx)
}

// DeleteSale removes a sale. The receipt number is not reclaimed.
func (s *SalesService) DeleteSale(ctx context.Context, id int64) error {
	if _, err := s.ledger.FindByID(ctx, id); err != nil {
		return err
	}
	return s.ledger.Delete(ctx, id)
}

// Overview aggregates the ledger: total revenue, units sold, unpaid count
func (s *SalesService) Overview(ctx context.Context) (sales.Summary, error) {
	return s.ledger.Aggregate(ctx)
}

// NextReceiptNumber previews the receipt number the next sale would get.
// Purely informational; the number is not reserved.
func (s *SalesService) NextReceiptNumber(ctx context.Context) (string, error) {
	return s.mintReceiptNumber(ctx)
}
