package services

import (
	"fmt"
	"log"
	"time"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/policy"
	"github.com/deal_management/pkg/email"
)

// Notifier delivers a best-effort message after a status transition has
// committed. Implementations never return an error: a committed transition
// must not be rolled back because its notification failed.
type Notifier interface {
	NotifyStatusChange(deal *models.Deal, actor policy.Actor)
}

// emailNotifier delivers over SMTP when the acting user has a contact address
// configured, and falls back to the process log otherwise. SMTP failures are
// logged with the full message content so nothing is silently lost.
type emailNotifier struct{}

// NewEmailNotifier creates the production Notifier.
func NewEmailNotifier() Notifier {
	return &emailNotifier{}
}

func (n *emailNotifier) NotifyStatusChange(deal *models.Deal, actor policy.Actor) {
	message := fmt.Sprintf("Deal %q (id %d) status set to %q by %s at %s",
		deal.DealName, deal.ID, deal.Status, actor.Username,
		deal.UpdatedAt.UTC().Format(time.RFC3339))

	if actor.Email == "" {
		log.Printf("Status notification: %s", message)
		return
	}
	if err := email.SendStatusNotification(actor.Email, actor.Username, deal); err != nil {
		log.Printf("Status notification email to %s failed: %v. Content: %s", actor.Email, err, message)
	}
}
