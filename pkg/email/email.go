package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendInvoice emails the customer their invoice with the PDF attached
func (s *EmailService) SendInvoice(to string, invoice *entity.Invoice, pdf []byte) error {
	htmlContent, err := s.renderInvoiceEmail(invoice)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your invoice %s - %s", invoice.Number, s.config.FromName)
	attachmentName := fmt.Sprintf("invoice-%s.pdf", invoice.Number)

	message, err := s.buildMultipartEmail(to, subject, htmlContent, attachmentName, pdf)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	return s.sendEmail(to, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMultipartEmail builds a multipart/mixed message with an HTML body and
// one PDF attachment
func (s *EmailService) buildMultipartEmail(to, subject, htmlBody, attachmentName string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/mixed; boundary=%q\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
		writer.Boundary(),
	)

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=\"UTF-8\"")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "application/pdf")
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName))
	attachPart, err := writer.CreatePart(attachHeader)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	if _, err := attachPart.Write([]byte(encoded)); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return append([]byte(headers), buf.Bytes()...), nil
}

// renderInvoiceEmail renders the invoice email template
func (s *EmailService) renderInvoiceEmail(invoice *entity.Invoice) (string, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		StoreName    string
		Number       string
		CustomerName string
		Total        string
		ItemCount    int
	}{
		StoreName:    s.config.FromName,
		Number:       invoice.Number,
		CustomerName: invoice.CustomerName,
		Total:        fmt.Sprintf("%.2f", invoice.GetTotalAmountDecimal()),
		ItemCount:    len(invoice.Items),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// invoiceTemplate is the HTML template for invoice emails
const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Your Invoice</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>{{.StoreName}}</h2>
    <p>Hello {{.CustomerName}},</p>
    <p>Thank you for your purchase. Your invoice <strong>{{.Number}}</strong>
    covering {{.ItemCount}} item(s) for a total of <strong>{{.Total}}</strong>
    is attached to this email as a PDF.</p>
    <p>We hope to see you again soon.</p>
    <p>&mdash; {{.StoreName}}</p>
</body>
</html>
`
