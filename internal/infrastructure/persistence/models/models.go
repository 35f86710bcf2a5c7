package models

import (
	"time"

	"github.com/dombastis/backend/internal/domain/livestock"
	"github.com/dombastis/backend/internal/domain/sales"
	"github.com/dombastis/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LivestockModel is the persistence model for the active-animal registry
type LivestockModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Sex       string          `gorm:"type:varchar(10);not null;index"`
	Weight    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tag       string          `gorm:"type:varchar(50)"`
	Breed     string          `gorm:"type:varchar(100)"`
	Location  string          `gorm:"type:varchar(10);not null;index"`
	Pen       int             `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (LivestockModel) TableName() string {
	return "livestock"
}

// ToDomain converts the persistence model to a domain Livestock entity
func (m *LivestockModel) ToDomain() *livestock.Livestock {
	return &livestock.Livestock{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:        m.Name,
		Sex:         livestock.Sex(m.Sex),
		WeightKg:    m.Weight,
		EarTag:      m.Tag,
		Breed:       m.Breed,
		PenLocation: livestock.PenLocation(m.Location),
		PenNumber:   m.Pen,
	}
}

// LivestockModelFromDomain creates a persistence model from a domain Livestock
func LivestockModelFromDomain(a *livestock.Livestock) *LivestockModel {
	return &LivestockModel{
		ID:        a.ID,
		Name:      a.Name,
		Sex:       a.Sex.String(),
		Weight:    a.WeightKg,
		Tag:       a.EarTag,
		Breed:     a.Breed,
		Location:  a.PenLocation.String(),
		Pen:       a.PenNumber,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// MutationLogModel is the persistence model for the append-only population
// ledger. livestock_id carries no foreign key constraint: log rows must
// survive deletion of the animal they reference.
type MutationLogModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	LivestockID   int64     `gorm:"not null;index"`
	Kind          string    `gorm:"type:varchar(10);not null"`
	Reason        string    `gorm:"type:varchar(50);not null"`
	Date          time.Time `gorm:"not null;index"`
	Note          string    `gorm:"type:text"`
	EvidencePhoto string    `gorm:"type:varchar(255)"`
	RecordedBy    string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (MutationLogModel) TableName() string {
	return "mutation_log"
}

// ToDomain converts the persistence model to a domain MutationEntryRecord
func (m *MutationLogModel) ToDomain() *livestock.MutationEntryRecord {
	return &livestock.MutationEntryRecord{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.CreatedAt,
		},
		LivestockID:   m.LivestockID,
		Kind:          livestock.MutationKind(m.Kind),
		Reason:        m.Reason,
		Date:          m.Date,
		Note:          m.Note,
		EvidencePhoto: m.EvidencePhoto,
		RecordedBy:    m.RecordedBy,
	}
}

// MutationLogModelFromDomain creates a persistence model from a domain MutationEntryRecord
func MutationLogModelFromDomain(e *livestock.MutationEntryRecord) *MutationLogModel {
	return &MutationLogModel{
		ID:            e.ID,
		LivestockID:   e.LivestockID,
		Kind:          e.Kind.String(),
		Reason:        e.Reason,
		Date:          e.Date,
		Note:          e.Note,
		EvidencePhoto: e.EvidencePhoto,
		RecordedBy:    e.RecordedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// SalesModel is the persistence model for the sales ledger. The unique
// index on receipt_id is the final authority on receipt uniqueness.
type SalesModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	ReceiptID   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Buyer       string          `gorm:"type:varchar(100);not null"`
	Phone       string          `gorm:"type:varchar(20)"`
	Description string          `gorm:"type:text"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Paid        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;index"`
	Date        time.Time       `gorm:"not null;index"`
	Note        string          `gorm:"type:text"`
	RecordedBy  string          `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SalesModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain SalesTransaction
func (m *SalesModel) ToDomain() *sales.SalesTransaction {
	return &sales.SalesTransaction{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ReceiptNumber: m.ReceiptID,
		BuyerName:     m.Buyer,
		BuyerPhone:    m.Phone,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalPrice:    m.Total,
		Paid:          m.Paid,
		Outstanding:   m.Balance,
		Date:          m.Date,
		Note:          m.Note,
		RecordedBy:    m.RecordedBy,
	}
}

// SalesModelFromDomain creates a persistence model from a domain SalesTransaction
func SalesModelFromDomain(t *sales.SalesTransaction) *SalesModel {
	return &SalesModel{
		ID:          t.ID,
		ReceiptID:   t.ReceiptNumber,
		Buyer:       t.BuyerName,
		Phone:       t.BuyerPhone,
		Description: t.Description,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		Total:       t.TotalPrice,
		Paid:        t.Paid,
		Balance:     t.Outstanding,
		Date:        t.Date,
		Note:        t.Note,
		RecordedBy:  t.RecordedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
