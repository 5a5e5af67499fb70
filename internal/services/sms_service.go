package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Notifier delivers a short text message to a phone number. Delivery is
// best effort; no receipt is consumed.
type Notifier interface {
	Send(to, body string) error
}

// SMSService sends SMS notifications through the Twilio Messages API.
type SMSService struct {
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
}

// NewSMSService creates a new SMSService.
func NewSMSService(accountSID, authToken, fromNumber string) *SMSService {
	return &SMSService{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers body to the given phone number. When no Twilio credentials
// are configured the call is logged and skipped so local development works
// without an account.
func (s *SMSService) Send(to, body string) error {
	if s.accountSID == "" || s.authToken == "" {
		log.Printf("[SMS] Not configured, skipping notification to %s", to)
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[SMS] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[SMS] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	return nil
}
