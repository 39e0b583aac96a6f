// Package mailer sends transactional mail over plain SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"maison-be/internal/config"
	"maison-be/internal/order"
	"maison-be/internal/utils"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	enabled  bool
}

// New builds a Mailer from config. When SMTP_HOST is unset the mailer
// runs disabled and every send is a silent no-op, so local setups work
// without a mail server.
func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		enabled:  cfg.SMTPHost != "",
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	msg := []byte(
		"From: " + m.username + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// SendOrderConfirmation emails a plain-text receipt for a freshly
// reconciled order.
func (m *Mailer) SendOrderConfirmation(_ context.Context, email string, o *order.Order) error {
	invoice := utils.GenerateInvoiceNumber()

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\n")
	fmt.Fprintf(&b, "Invoice: %s\n", invoice)
	fmt.Fprintf(&b, "Order #%d\n", o.ID)
	fmt.Fprintf(&b, "Status: %s\n\n", o.Status)

	for _, item := range o.Items {
		name := item.ProductName
		if name == "" {
			name = fmt.Sprintf("Product %d", item.ProductID)
		}
		fmt.Fprintf(&b, "  %s x%d @ %.2f\n", name, item.Quantity, item.Price)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.TotalAmount)
	if o.ShippingAddress != nil {
		fmt.Fprintf(&b, "Shipping to: %s\n", *o.ShippingAddress)
	}

	subject := fmt.Sprintf("Order confirmation #%d", o.ID)
	return m.send(email, subject, b.String())
}
