// Package notify delivers sale notifications to the store owner's WhatsApp
// through Twilio.
package notify

import (
	"fmt"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// WhatsAppConfig holds Twilio WhatsApp settings
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
}

// WhatsAppNotifier sends sale notifications to a fixed WhatsApp number
type WhatsAppNotifier struct {
	client *twilio.RestClient
	config WhatsAppConfig
}

// NewWhatsAppNotifier creates a new WhatsApp notifier
func NewWhatsAppNotifier(config WhatsAppConfig) *WhatsAppNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})
	return &WhatsAppNotifier{client: client, config: config}
}

// NotifySale sends a short message describing a completed sale
func (n *WhatsAppNotifier) NotifySale(invoice *entity.Invoice) error {
	body := fmt.Sprintf(
		"New sale recorded: invoice %s for %s, %d item(s), total %.2f",
		invoice.Number,
		invoice.CustomerName,
		len(invoice.Items),
		invoice.GetTotalAmountDecimal(),
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + n.config.FromNumber)
	params.SetTo("whatsapp:" + n.config.ToNumber)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send WhatsApp notification: %w", err)
	}
	return nil
}
