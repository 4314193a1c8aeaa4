package controllers

import (
	"errors"
	"net/http"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/services"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer.
// Only profile fields are editable here; the aggregates belong to the ledger.
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// CreateCustomer creates a new customer with zeroed aggregates
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name and mobile number are required")
		return
	}

	if !utils.ValidateMobile(input.Mobile) {
		utils.RespondWithError(c, http.StatusBadRequest, "Mobile number must be exactly 10 digits")
		return
	}

	var existing models.Customer
	if err := config.DB.Where("mobile = ?", input.Mobile).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "A customer with this mobile number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	customer := models.Customer{
		Name:      input.Name,
		Mobile:    input.Mobile,
		Email:     input.Email,
		Address:   input.Address,
		JoinDate:  now,
		LastVisit: now,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers, newest first
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates a customer's profile fields and stamps the visit
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Mobile != nil && *input.Mobile != customer.Mobile {
		if !utils.ValidateMobile(*input.Mobile) {
			utils.RespondWithError(c, http.StatusBadRequest, "Mobile number must be exactly 10 digits")
			return
		}

		var existing models.Customer
		if err := config.DB.Where("mobile = ? AND id <> ?", *input.Mobile, customer.ID).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "A customer with this mobile number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		customer.Mobile = *input.Mobile
	}

	if input.Name != nil && *input.Name != "" {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	customer.LastVisit = time.Now()

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer unless they still own bills
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	if err := billing().DeleteCustomer(customerUUID); err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		case errors.Is(err, services.ErrHasBills):
			utils.RespondWithError(c, http.StatusConflict,
				"Cannot delete customer with existing bills. Please delete all customer bills first.")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer removed successfully"})
}

// GetCustomerStats returns the dashboard stat cards
func GetCustomerStats(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	today := utils.BeginningOfDay(time.Now())
	var todayVisitors int64
	config.DB.Model(&models.Customer{}).Where("last_visit >= ?", today).Count(&todayVisitors)

	var pendingPayments decimal.Decimal
	config.DB.Model(&models.Customer{}).
		Select("COALESCE(SUM(amount_due), 0)").Scan(&pendingPayments)

	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	var monthlyRevenue decimal.Decimal
	config.DB.Model(&models.Bill{}).
		Where("created_at >= ?", oneMonthAgo).
		Select("COALESCE(SUM(paid), 0)").Scan(&monthlyRevenue)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"todayVisitors":   todayVisitors,
		"pendingPayments": pendingPayments,
		"monthlyRevenue":  monthlyRevenue,
	})
}
