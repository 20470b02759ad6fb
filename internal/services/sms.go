package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService delivers OTP codes over SMS via Twilio.
// When Twilio credentials are absent the service runs in mock mode and the
// generated code is surfaced in the API response instead.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

var smsServiceInstance *SMSService

// SetSMSService sets the global SMS service instance (call from main.go)
func SetSMSService(s *SMSService) {
	smsServiceInstance = s
}

// GetSMSService returns the global SMS service instance (nil in mock mode)
func GetSMSService() *SMSService {
	return smsServiceInstance
}

// NewSMSService creates a new Twilio-backed SMS service
func NewSMSService() (*SMSService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_SMS_FROM") // Format: "+14155238886"

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &SMSService{
		client: client,
		from:   from,
	}, nil
}

// SendOTP sends the verification code to the given phone number
func (s *SMSService) SendOTP(to string, code string) error {
	body := fmt.Sprintf("%s is your VoiceBank verification code. It expires in 10 minutes.", code)

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send OTP SMS: %v", err)
		return err
	}

	log.Printf("✅ OTP SMS sent! SID: %s", *resp.Sid)
	return nil
}
