// controllers/bill.go
package controllers

import (
	"errors"
	"net/http"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/services"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func billing() *services.BillingService {
	return services.NewBillingService(config.DB)
}

// respondBillingError maps ledger errors onto HTTP statuses.
func respondBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, services.ErrBillNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
	case errors.Is(err, services.ErrNoItems):
		utils.RespondWithError(c, http.StatusBadRequest, "At least one item is required")
	case errors.Is(err, services.ErrItemName):
		utils.RespondWithError(c, http.StatusBadRequest, "Every item must have a name")
	case errors.Is(err, services.ErrInvalidPayment):
		utils.RespondWithError(c, http.StatusBadRequest, "Valid payment amount is required")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// GetBills retrieves all bills with their owning customer
func GetBills(c *gin.Context) {
	var bills []models.Bill
	if err := config.DB.Preload("Items").Preload("Customer").
		Order("created_at DESC").Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	c.JSON(http.StatusOK, bills)
}

// GetBillsByCustomer retrieves all bills owned by one customer
func GetBillsByCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var bills []models.Bill
	if err := config.DB.Preload("Items").
		Where("customer_id = ?", customerUUID).
		Order("created_at DESC").Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	c.JSON(http.StatusOK, bills)
}

// GetBill retrieves a specific bill by ID
func GetBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	var bill models.Bill
	if err := config.DB.Preload("Items").Preload("Customer").
		First(&bill, "id = ?", billUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, bill)
}

// CreateBill creates a bill and applies it to the customer's totals
func CreateBill(c *gin.Context) {
	var input services.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bill, err := billing().CreateBill(input)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// UpdateBill replaces the provided fields of a bill
func UpdateBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	var input services.UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bill, err := billing().UpdateBill(billUUID, input)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

type recordPaymentInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// RecordPayment applies a received payment to a bill
func RecordPayment(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	var input recordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Valid payment amount is required")
		return
	}

	bill, err := billing().RecordPayment(billUUID, input.Amount)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}
