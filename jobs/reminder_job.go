package jobs

import (
	"fmt"
	"log"

	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/models"
	"github.com/almusafir/travel_booking/notifications"
	"github.com/almusafir/travel_booking/payments"
	"github.com/google/uuid"
)

// SendInstallmentReminders emails travelers whose installments fall due
// within the next three days.
func SendInstallmentReminders() {
	log.Println("Running job: SendInstallmentReminders...")

	// Local midnight, matching the day arithmetic the payment core uses for
	// due dates and the travel deadline.
	today := payments.SystemClock{}.Today()
	upperBound := today.AddDate(0, 0, 3)

	var dueSoon []models.Installment
	err := database.DB.
		Where("status = ? AND due_date BETWEEN ? AND ?", payments.StatusDue, today, upperBound).
		Find(&dueSoon).Error
	if err != nil {
		log.Printf("Error checking for due installments: %v", err)
		return
	}

	if len(dueSoon) == 0 {
		return
	}

	for _, installment := range dueSoon {
		bookingID, err := uuid.Parse(installment.BookingID)
		if err != nil {
			// Direct charges and externally created plans may carry
			// non-UUID booking references; nothing to email for those.
			continue
		}

		var booking models.Booking
		if err := database.DB.Where("id = ? AND tenant_id = ?", bookingID, installment.TenantID).
			First(&booking).Error; err != nil {
			continue
		}

		emailSubject := fmt.Sprintf("Reminder: Installment %d is due soon", installment.InstallmentNumber)
		emailBody := fmt.Sprintf(
			"<h1>Installment Due</h1><p>Hi %s,</p><p>Installment %d of %d for your booking is due on %s. Please pay before your travel date to keep your booking confirmed.</p>",
			booking.TravelerName,
			installment.InstallmentNumber,
			installment.TotalInstallments,
			installment.DueDate.Format("2 January 2006"),
		)

		go notifications.SendEmail(booking.TravelerName, booking.UserEmail, emailSubject, emailBody)
	}

	log.Printf("Sent reminders for %d due installments", len(dueSoon))
}
