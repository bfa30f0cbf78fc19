// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/vanleybasso/ladiversite/internal/config"
	"github.com/vanleybasso/ladiversite/internal/models"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

// SendOrderConfirmation mails the shopper after a payment settles. A
// missing SMTP host disables mail entirely (local development).
func (s *NotificationService) SendOrderConfirmation(order *models.Order, email, name string) error {
	if s.config.Email.SMTPHost == "" {
		logrus.WithField("order_id", order.ID).Debug("SMTP not configured, skipping order confirmation")
		return nil
	}

	data := map[string]interface{}{
		"Name":         name,
		"OrderID":      order.ID.String(),
		"Total":        fmt.Sprintf("R$%.2f", order.Total),
		"Discount":     fmt.Sprintf("R$%.2f", order.DiscountApplied),
		"IsFirstOrder": order.IsFirstOrder,
		"ItemCount":    len(order.Items),
		"City":         order.ShippingAddress.City,
	}

	body, err := s.renderTemplate(orderConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, "Pedido confirmado — La Diversité", body)
}

const orderConfirmationTemplate = `
<html>
<body>
	<h2>Obrigado, {{.Name}}!</h2>
	<p>Seu pedido <strong>{{.OrderID}}</strong> foi confirmado e será enviado para {{.City}}.</p>
	<p>{{.ItemCount}} item(ns) — total <strong>{{.Total}}</strong>.</p>
	{{if .IsFirstOrder}}<p>Desconto de primeira compra aplicado: {{.Discount}}.</p>{{end}}
</body>
</html>`

func (s *NotificationService) renderTemplate(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	cfg := s.config.Email

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		cfg.FromName, cfg.FromEmail, to, subject, body)

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
