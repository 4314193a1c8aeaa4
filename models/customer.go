package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name    string `gorm:"not null" json:"name"`
	Mobile  string `gorm:"not null;uniqueIndex" json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`

	JoinDate  time.Time `json:"joinDate"`
	LastVisit time.Time `json:"lastVisit"`

	// Denormalized aggregates over the customer's bills. TotalSpent is the
	// sum of bill amounts, AmountDue the sum of outstanding dues. Both are
	// maintained inside the same transaction as every bill write; AmountDue
	// is never stored negative.
	TotalSpent decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"totalSpent"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amountDue"`

	Bills []Bill `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
