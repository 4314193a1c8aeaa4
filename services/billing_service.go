// services/billing_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"billtrack-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBillNotFound     = errors.New("bill not found")
	ErrNoItems          = errors.New("at least one item is required")
	ErrItemName         = errors.New("every item must have a name")
	ErrInvalidPayment   = errors.New("valid payment amount is required")
	ErrHasBills         = errors.New("cannot delete customer with existing bills")
)

// BillItemInput is a line item as submitted by the client. Quantity and
// price are coerced, not rejected: quantity below 1 becomes 1, a negative
// price becomes 0. An empty name is the only hard failure.
type BillItemInput struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type CreateBillInput struct {
	UserID uuid.UUID       `json:"userId" binding:"required"`
	Items  []BillItemInput `json:"items"`
	Paid   decimal.Decimal `json:"paid"`
	Notes  string          `json:"notes"`
}

type UpdateBillInput struct {
	Items *[]BillItemInput `json:"items"`
	Paid  *decimal.Decimal `json:"paid"`
	Notes *string          `json:"notes"`
}

// BillingService owns every mutation of the billing ledger. Each operation
// updates the bill and folds the resulting (amount, due) delta into the
// owning customer's denormalized aggregates in a single transaction, always
// locking the customer row before touching the bill so that concurrent
// mutations against the same ledger serialize instead of losing updates.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

func normalizeItems(inputs []BillItemInput) ([]models.BillItem, error) {
	if len(inputs) == 0 {
		return nil, ErrNoItems
	}
	items := make([]models.BillItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, ErrItemName
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := in.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		items = append(items, models.BillItem{
			Name:     in.Name,
			Quantity: quantity,
			Price:    price,
		})
	}
	return items, nil
}

// lockCustomer loads the customer under SELECT ... FOR UPDATE. SQLite has
// no row locks; its single test connection is already serialized.
func lockCustomer(tx *gorm.DB, id uuid.UUID) (*models.Customer, error) {
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var customer models.Customer
	if err := tx.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// applyCustomerDelta folds a bill-level delta into the owning customer's
// aggregates. The customer row must already be locked by the caller's
// transaction. AmountDue is clamped at zero before it is written back.
func applyCustomerDelta(tx *gorm.DB, customer *models.Customer, deltaAmount, deltaDue decimal.Decimal, visited bool) error {
	totalSpent := customer.TotalSpent.Add(deltaAmount)
	amountDue := customer.AmountDue.Add(deltaDue)
	if amountDue.IsNegative() {
		amountDue = decimal.Zero
	}
	updates := map[string]interface{}{
		"total_spent": totalSpent,
		"amount_due":  amountDue,
	}
	if visited {
		updates["last_visit"] = time.Now()
	}
	return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error
}

// CreateBill persists a new bill for the customer and adds its amount and
// due to the customer's totals, stamping the visit.
func (s *BillingService) CreateBill(input CreateBillInput) (*models.Bill, error) {
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	paid := input.Paid
	if paid.IsNegative() {
		paid = decimal.Zero
	}

	amount := models.BillAmount(items)
	due := models.DueAmount(amount, paid)

	bill := models.Bill{
		CustomerID: input.UserID,
		Items:      items,
		Amount:     amount,
		Paid:       paid,
		Due:        due,
		Status:     models.StatusFor(amount, due),
		Notes:      input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := lockCustomer(tx, input.UserID)
		if err != nil {
			return err
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		return applyCustomerDelta(tx, customer, amount, due, true)
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// UpdateBill replaces the provided fields of an existing bill. Items are a
// full replacement, paid is an outright replacement (not an increment), and
// due/status are recomputed either way. The customer receives the delta
// between the old and new (amount, due) snapshots.
func (s *BillingService) UpdateBill(billID uuid.UUID, input UpdateBillInput) (*models.Bill, error) {
	var bill models.Bill

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// CustomerID is immutable, so an unlocked read is enough to
		// establish the lock order: customer row first, then the bill.
		var ref models.Bill
		if err := tx.Select("customer_id").First(&ref, "id = ?", billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return err
		}

		customer, err := lockCustomer(tx, ref.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.Preload("Items").First(&bill, "id = ?", billID).Error; err != nil {
			return err
		}

		previousAmount := bill.Amount
		previousDue := bill.Due

		if input.Items != nil {
			items, err := normalizeItems(*input.Items)
			if err != nil {
				return err
			}
			if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].BillID = bill.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			bill.Items = items
			bill.Amount = models.BillAmount(items)
		}

		if input.Paid != nil {
			paid := *input.Paid
			if paid.IsNegative() {
				paid = decimal.Zero
			}
			bill.Paid = paid
		}

		if input.Notes != nil {
			bill.Notes = *input.Notes
		}

		bill.Due = models.DueAmount(bill.Amount, bill.Paid)
		bill.Status = models.StatusFor(bill.Amount, bill.Due)

		if err := tx.Omit(clause.Associations).Save(&bill).Error; err != nil {
			return err
		}

		return applyCustomerDelta(tx, customer,
			bill.Amount.Sub(previousAmount),
			bill.Due.Sub(previousDue),
			false)
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// RecordPayment adds a received amount to the bill's paid total. Overpayment
// is accepted: due clamps to zero and the excess stays on the bill. Only the
// customer's amountDue moves; a payment changes what was collected, not what
// was billed.
func (s *BillingService) RecordPayment(billID uuid.UUID, amount decimal.Decimal) (*models.Bill, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidPayment
	}

	var bill models.Bill

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ref models.Bill
		if err := tx.Select("customer_id").First(&ref, "id = ?", billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return err
		}

		customer, err := lockCustomer(tx, ref.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.Preload("Items").First(&bill, "id = ?", billID).Error; err != nil {
			return err
		}

		previousDue := bill.Due

		bill.Paid = bill.Paid.Add(amount)
		bill.Due = models.DueAmount(bill.Amount, bill.Paid)

		// A payment only moves a bill toward settled; it can never take
		// the status back to Unpaid.
		if bill.Due.IsZero() {
			bill.Status = models.StatusPaid
		} else {
			bill.Status = models.StatusPartial
		}

		if err := tx.Omit(clause.Associations).Save(&bill).Error; err != nil {
			return err
		}

		return applyCustomerDelta(tx, customer,
			decimal.Zero,
			bill.Due.Sub(previousDue),
			false)
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteCustomer removes a customer, refusing while any bill still points
// at them so the ledger never orphans financial history.
func (s *BillingService) DeleteCustomer(customerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := lockCustomer(tx, customerID)
		if err != nil {
			return err
		}

		var billCount int64
		if err := tx.Model(&models.Bill{}).Where("customer_id = ?", customer.ID).Count(&billCount).Error; err != nil {
			return err
		}
		if billCount > 0 {
			return ErrHasBills
		}

		return tx.Delete(&models.Customer{}, "id = ?", customer.ID).Error
	})
}
