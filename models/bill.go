package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill payment statuses. Status is a pure function of (amount, due):
// due == 0 is Paid, 0 < due < amount is Partial, everything else Unpaid.
const (
	StatusPaid    = "Paid"
	StatusPartial = "Partial"
	StatusUnpaid  = "Unpaid"
)

type Bill struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"items"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Paid   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid"`
	Due    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"due"`
	Status string          `gorm:"type:varchar(10);not null;default:'Unpaid'" json:"status"`
	Notes  string          `json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BillItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Name     string          `gorm:"not null" json:"name"`
	Quantity int             `gorm:"not null;default:1" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

func (i *BillItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// BillAmount sums quantity x price over the items.
func BillAmount(items []BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DueAmount is the outstanding balance, floored at zero so overpayment
// never produces a negative due.
func DueAmount(amount, paid decimal.Decimal) decimal.Decimal {
	due := amount.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// StatusFor derives the payment status from the bill's amount and due.
// A zero-amount bill has due == 0 and is therefore Paid.
func StatusFor(amount, due decimal.Decimal) string {
	switch {
	case due.IsZero():
		return StatusPaid
	case due.LessThan(amount):
		return StatusPartial
	default:
		return StatusUnpaid
	}
}
