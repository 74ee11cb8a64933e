package email

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/deal_management/internal/models"
)

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// LoadSMTPConfigFromEnv loads SMTP configuration from environment variables
func LoadSMTPConfigFromEnv() (*SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	sender := os.Getenv("SMTP_SENDER_EMAIL")

	if host == "" || portStr == "" || sender == "" {
		return nil, fmt.Errorf("SMTP_HOST, SMTP_PORT, and SMTP_SENDER_EMAIL must be set")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		Username: username, // Username can be empty for some SMTP servers
		Password: password, // Password can be empty for some SMTP servers
		Sender:   sender,
	}, nil
}

// SendStatusNotification emails the recipient about a deal status transition.
func SendStatusNotification(toEmail string, recipientName string, deal *models.Deal) error {
	config, err := LoadSMTPConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load SMTP config: %w", err)
	}

	subject := fmt.Sprintf("Deal status update: %s", deal.DealName)
	body := fmt.Sprintf(`
<html>
<body>
    <p>Hi %s,</p>
    <p>The status of deal <strong>%s</strong> (id %d, %s, %s) was set to <strong>%s</strong> on %s.</p>
    <p>Open the deal in the tracker to review its history and attachments.</p>
    <p><small>(This is an automated message, please do not reply.)</small></p>
</body>
</html>
`, recipientName, deal.DealName, deal.ID, deal.City, deal.State, deal.Status,
		deal.UpdatedAt.UTC().Format(time.RFC1123))

	// Email headers need CRLF line endings and an explicit HTML Content-Type.
	msg := []byte(strings.Join([]string{
		"To: " + toEmail,
		"From: " + config.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n"))

	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	if err := smtp.SendMail(addr, auth, config.Sender, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
