// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"billtrack-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends an SMS nudge to customers carrying an outstanding
// balance who have not visited recently.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	var client *twilio.RestClient
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &ReminderService{
		db:     db,
		client: client,
		from:   os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDueReminders()
	})

	c.Start()
	log.Println("Due-payment reminder scheduler started")
}

// SendDueReminders messages every customer whose amountDue is positive and
// whose last visit is at least a week old.
func (s *ReminderService) SendDueReminders() {
	if s.client == nil {
		log.Println("Twilio not configured, skipping due reminders")
		return
	}

	log.Println("Starting due-payment reminder processing...")

	cutoff := time.Now().AddDate(0, 0, -7)

	var customers []models.Customer
	if err := s.db.Where("amount_due > ? AND last_visit < ?", decimal.Zero, cutoff).
		Find(&customers).Error; err != nil {
		log.Printf("Failed to fetch customers with dues: %v", err)
		return
	}

	sent := 0
	for _, customer := range customers {
		if err := s.sendReminder(customer); err != nil {
			log.Printf("Customer %s: failed to send reminder: %v", customer.ID, err)
			continue
		}
		sent++
	}

	log.Printf("Due-payment reminder processing completed, %d message(s) sent", sent)
}

func (s *ReminderService) sendReminder(customer models.Customer) error {
	body := fmt.Sprintf(
		"Hi %s, a friendly reminder that you have an outstanding balance of %s with us. Please visit or call to settle it. Thank you!",
		customer.Name, customer.AmountDue.StringFixed(2))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+91" + customer.Mobile)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
