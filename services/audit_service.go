// services/audit_service.go
package services

import (
	"log"

	"billtrack-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AuditService periodically recomputes every customer's totalSpent and
// amountDue from their bills and repairs any drift. The aggregates are
// written eagerly on every bill mutation, so this is a safety net for the
// denormalization, not part of the write path.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) StartScheduler() {
	c := cron.New()

	// Run nightly at 2:30 AM, outside business hours
	c.AddFunc("30 2 * * *", func() {
		s.ReconcileAggregates()
	})

	c.Start()
	log.Println("Aggregate audit scheduler started")
}

// ReconcileAggregates walks all customers and rewrites any aggregate pair
// that no longer matches the sums over the customer's bills.
func (s *AuditService) ReconcileAggregates() {
	log.Println("Starting aggregate reconciliation...")

	var customerIDs []string
	if err := s.db.Model(&models.Customer{}).Pluck("id", &customerIDs).Error; err != nil {
		log.Printf("Failed to list customers: %v", err)
		return
	}

	repaired := 0
	for _, id := range customerIDs {
		fixed, err := s.reconcileCustomer(id)
		if err != nil {
			log.Printf("Customer %s: reconciliation failed: %v", id, err)
			continue
		}
		if fixed {
			repaired++
		}
	}

	log.Printf("Aggregate reconciliation completed, %d customer(s) repaired", repaired)
}

func (s *AuditService) reconcileCustomer(customerID string) (bool, error) {
	repaired := false

	id, err := uuid.Parse(customerID)
	if err != nil {
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := lockCustomer(tx, id)
		if err != nil {
			return err
		}

		var bills []models.Bill
		if err := tx.Where("customer_id = ?", customer.ID).Find(&bills).Error; err != nil {
			return err
		}

		totalSpent := decimal.Zero
		amountDue := decimal.Zero
		for _, bill := range bills {
			totalSpent = totalSpent.Add(bill.Amount)
			amountDue = amountDue.Add(bill.Due)
		}

		if customer.TotalSpent.Equal(totalSpent) && customer.AmountDue.Equal(amountDue) {
			return nil
		}

		log.Printf("Customer %s: aggregate drift detected (totalSpent %s -> %s, amountDue %s -> %s)",
			customer.ID, customer.TotalSpent, totalSpent, customer.AmountDue, amountDue)

		repaired = true
		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]interface{}{
			"total_spent": totalSpent,
			"amount_due":  amountDue,
		}).Error
	})

	return repaired, err
}
