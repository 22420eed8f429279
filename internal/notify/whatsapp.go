package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// WhatsAppSender delivers booking reminders through Twilio's WhatsApp
// channel. With no credentials configured it stays disabled and the
// scheduler skips reminder delivery.
type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func NewWhatsAppSender(accountSID, authToken, from string, log *zap.Logger) *WhatsAppSender {
	if accountSID == "" || authToken == "" || from == "" {
		return &WhatsAppSender{log: log}
	}

	return &WhatsAppSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log,
	}
}

func (s *WhatsAppSender) Enabled() bool {
	return s.client != nil
}

func (s *WhatsAppSender) Send(phone, body string) error {
	if !s.Enabled() {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(fmt.Sprintf("whatsapp:%s", s.from))
	params.SetTo(fmt.Sprintf("whatsapp:%s", phone))
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		s.log.Warn("whatsapp send failed",
			zap.String("to", phone),
			zap.Error(err),
		)
		return err
	}

	return nil
}
