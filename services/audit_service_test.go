package services

import (
	"testing"

	"billtrack-backend/models"

	"github.com/stretchr/testify/require"
)

func TestReconcileAggregatesRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	customer := newTestCustomer(t, db, "9876543210")

	_, err := svc.CreateBill(CreateBillInput{
		UserID: customer.ID,
		Items:  []BillItemInput{{Name: "Facial", Quantity: 2, Price: dec("100")}},
		Paid:   dec("50"),
	})
	require.NoError(t, err)

	// Simulate drift from a missed reconciliation
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"total_spent": dec("999"),
			"amount_due":  dec("0"),
		}).Error)

	NewAuditService(db).ReconcileAggregates()

	after := reloadCustomer(t, db, customer.ID)
	assertMoney(t, "200", after.TotalSpent)
	assertMoney(t, "150", after.AmountDue)
}

func TestReconcileAggregatesLeavesConsistentCustomersAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewBillingService(db)
	customer := newTestCustomer(t, db, "9876543210")

	_, err := svc.CreateBill(CreateBillInput{
		UserID: customer.ID,
		Items:  []BillItemInput{{Name: "Facial", Quantity: 1, Price: dec("100")}},
	})
	require.NoError(t, err)

	audit := NewAuditService(db)
	fixed, err := audit.reconcileCustomer(customer.ID.String())
	require.NoError(t, err)
	require.False(t, fixed)
}
