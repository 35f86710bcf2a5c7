package handler

import (
	"time"

	appsales "github.com/dombastis/backend/internal/application/sales"
	"github.com/dombastis/backend/internal/domain/sales"
	"github.com/dombastis/backend/internal/interfaces/http/dto"
	"github.com/dombastis/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SalesHandler handles sales ledger endpoints
type SalesHandler struct {
	BaseHandler
	sales *appsales.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *appsales.SalesService) *SalesHandler {
	return &SalesHandler{sales: salesService}
}

// RecordSaleRequest represents a request to record a sale.
// receipt_number is optional; when omitted the next number is minted.
type RecordSaleRequest struct {
	ReceiptNumber string `json:"receipt_number" binding:"max=50"`
	BuyerName     string `json:"buyer_name" binding:"required,min=1,max=100"`
	BuyerPhone    string `json:"buyer_phone" binding:"max=20"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	UnitPrice     string `json:"unit_price" binding:"required,decimalstr"`
	Paid          string `json:"paid" binding:"omitempty,decimalstr"`
	Date          string `json:"date"`
	Note          string `json:"note"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            int64     `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	BuyerName     string    `json:"buyer_name"`
	BuyerPhone    string    `json:"buyer_phone,omitempty"`
	Description   string    `json:"description,omitempty"`
	Quantity      int       `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	TotalPrice    string    `json:"total_price"`
	Paid          string    `json:"paid"`
	Outstanding   string    `json:"outstanding"`
	Settled       bool      `json:"settled"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note,omitempty"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSaleResponse(t *sales.SalesTransaction) SaleResponse {
	return SaleResponse{
		ID:            t.ID,
		ReceiptNumber: t.ReceiptNumber,
		BuyerName:     t.BuyerName,
		BuyerPhone:    t.BuyerPhone,
		Description:   t.Description,
		Quantity:      t.Quantity,
		UnitPrice:     t.UnitPrice.String(),
		TotalPrice:    t.TotalPrice.String(),
		Paid:          t.Paid.String(),
		Outstanding:   t.Outstanding.String(),
		Settled:       t.IsSettled(),
		Date:          t.Date,
		Note:          t.Note,
		RecordedBy:    t.RecordedBy,
		CreatedAt:     t.CreatedAt,
	}
}

// Record records a sale with a unique receipt number
func (h *SalesHandler) Record(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		h.BadRequest(c, "unit_price must be a decimal number")
		return
	}

	paid := decimal.Zero
	if req.Paid != "" {
		if paid, err = decimal.NewFromString(req.Paid); err != nil {
			h.BadRequest(c, "paid must be a decimal number")
			return
		}
	}

	var date time.Time
	if req.Date != "" {
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			h.BadRequest(c, "date must be formatted YYYY-MM-DD")
			return
		}
	}

	tx, err := h.sales.RecordSale(c.Request.Context(), actingUser(c), appsales.RecordSaleRequest{
		ReceiptNumber: req.ReceiptNumber,
		BuyerName:     req.BuyerName,
		BuyerPhone:    req.BuyerPhone,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		Paid:          paid,
		Date:          date,
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSaleResponse(tx))
}

// List lists all sales, newest first
func (h *SalesHandler) List(c *gin.Context) {
	txs, err := h.sales.ListSales(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SaleResponse, len(txs))
	for i := range txs {
		out[i] = toSaleResponse(&txs[i])
	}
	h.SuccessWithTotal(c, out, int64(len(out)))
}

// Get fetches one sale by ID
func (h *SalesHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	tx, err := h.sales.GetSale(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSaleResponse(tx))
}

// Delete removes a sale. Its receipt number is not reclaimed.
func (h *SalesHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.sales.DeleteSale(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Overview aggregates the ledger: revenue, units sold, unpaid count
func (h *SalesHandler) Overview(c *gin.Context) {
	summary, err := h.sales.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"total_revenue":    summary.TotalRevenue.Amount().String(),
		"total_units_sold": summary.TotalUnitsSold,
		"count_unpaid":     summary.CountUnpaid,
	})
}

// NextReceipt previews the next receipt number without reserving it
func (h *SalesHandler) NextReceipt(c *gin.Context) {
	number, err := h.sales.NextReceiptNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"receipt_number": number})
}
