// utils/email.go
package utils

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/fazetwerpgit/saleshub_backend/models"
)

// SMTPMailer sends portal emails through the configured SMTP relay.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// SendSaleResolved emails a salesperson about the outcome of their
// sale. Callers treat a failure as best-effort and only log it.
func (m *SMTPMailer) SendSaleResolved(email string, sale *models.Sale) error {
	var subject, body string
	if sale.Status == models.SaleStatusApproved {
		subject = "Your sale has been approved"
		body = fmt.Sprintf("Dear %s,\n\nYour %s sale has been approved by %s. You earned %d points.\n\nBest regards,\nSalesHub",
			sale.SalesRepName, sale.SaleType, sale.ApproverName, sale.TotalPoints)
	} else {
		subject = "Your sale was not approved"
		reason := sale.RejectionReason
		if reason == "" {
			reason = "No reason was provided"
		}
		body = fmt.Sprintf("Dear %s,\n\nYour %s sale was rejected by %s.\nReason: %s\n\nBest regards,\nSalesHub",
			sale.SalesRepName, sale.SaleType, sale.ApproverName, reason)
	}

	return sendMail(email, subject, body)
}

func sendMail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	if smtpHost == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", smtpUser)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(msg)
}
