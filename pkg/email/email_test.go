package email

import (
	"os"
	"testing"
	"time"

	"github.com/deal_management/internal/models"
)

func TestSendStatusNotification(t *testing.T) {
	// Real SMTP round trip, gated on a configured recipient.
	recipientEmail := os.Getenv("TEST_RECIPIENT_EMAIL")
	if recipientEmail == "" {
		t.Skip("Skipping email sending test: TEST_RECIPIENT_EMAIL environment variable not set.")
	}

	recipientName := os.Getenv("TEST_RECIPIENT_NAME")
	if recipientName == "" {
		recipientName = "Test User"
	}

	deal := &models.Deal{
		ID:        1,
		DealName:  "Sunset Plaza",
		State:     "CA",
		City:      "Los Angeles",
		Status:    "Active",
		UpdatedAt: time.Now(),
	}

	t.Logf("Attempting to send status notification to %s using SMTP server %s:%s...",
		recipientEmail, os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"))

	if err := SendStatusNotification(recipientEmail, recipientName, deal); err != nil {
		t.Errorf("SendStatusNotification failed: %v", err)
		t.Log("Ensure SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD and SMTP_SENDER_EMAIL are set and the server is reachable.")
	} else {
		t.Logf("Email sent request processed for %s. Please check the inbox to confirm reception.", recipientEmail)
	}
}
