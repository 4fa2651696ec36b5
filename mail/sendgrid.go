package mail

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers transactional mail (OTP codes, order confirmations).
type Sender struct {
	apiKey string
	from   string
}

// NewFromEnv builds a Sender from SENDGRID_API_KEY and MAIL_FROM. With
// no API key configured the Sender logs instead of sending, so local
// setups boot without SendGrid credentials.
func NewFromEnv() *Sender {
	return &Sender{
		apiKey: os.Getenv("SENDGRID_API_KEY"),
		from:   os.Getenv("MAIL_FROM"),
	}
}

func (s *Sender) Send(to, subject, body string) error {
	if s == nil || s.apiKey == "" {
		log.Printf("📧 [mail disabled] to=%s subject=%q", to, subject)
		return nil
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("Maison Lux", s.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("❌ sendgrid error status=%d body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	log.Printf("📧 mail sent: to=%s subject=%q", to, subject)
	return nil
}

// SendOTP mails a login/registration code.
func (s *Sender) SendOTP(to, code string) error {
	body := fmt.Sprintf("Your Maison Lux sign-in code is %s. It expires in 10 minutes.", code)
	return s.Send(to, "Your sign-in code", body)
}

// SendPasswordReset mails a password reset code.
func (s *Sender) SendPasswordReset(to, code string) error {
	body := fmt.Sprintf("Your Maison Lux password reset code is %s. It expires in 10 minutes.", code)
	return s.Send(to, "Reset your password", body)
}

// SendOrderConfirmation mails a checkout receipt. Best-effort only.
func (s *Sender) SendOrderConfirmation(to, orderRef string, total float64) error {
	body := fmt.Sprintf("Thank you for your order %s. Total charged: %.2f.", orderRef, total)
	return s.Send(to, "Order confirmation "+orderRef, body)
}
