package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nairsand/voicebank/internal/models"
)

// APIClient talks to the VoiceBank backend. Every operation is a single
// attempt with no retry or caching; any non-success outcome collapses into a
// generic error naming the attempted action.
type APIClient struct {
	client *resty.Client
}

// NewAPIClient creates a client for the backend at baseURL
func NewAPIClient(baseURL string) *APIClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/") + "/api")
	client.SetTimeout(15 * time.Second)
	client.SetHeader("Content-Type", "application/json")

	return &APIClient{client: client}
}

// SendOTP requests a verification code for the phone number
func (a *APIClient) SendOTP(phone string) (*models.SendOTPResponse, error) {
	var result models.SendOTPResponse
	resp, err := a.client.R().
		SetBody(models.OTPRequest{Phone: phone}).
		SetResult(&result).
		Post("/auth/send-otp")

	if err := checkResponse(resp, err, "send OTP"); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyOTP submits the code and learns whether an account exists
func (a *APIClient) VerifyOTP(phone, otp string) (*models.VerifyOTPResponse, error) {
	var result models.VerifyOTPResponse
	resp, err := a.client.R().
		SetBody(models.OTPVerifyRequest{Phone: phone, OTP: otp}).
		SetResult(&result).
		Post("/auth/verify-otp")

	if err := checkResponse(resp, err, "verify OTP"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account
func (a *APIClient) Register(phone, name, pin string) (*models.User, error) {
	var result models.AuthResponse
	resp, err := a.client.R().
		SetBody(models.UserRegistration{Phone: phone, Name: name, PIN: pin}).
		SetResult(&result).
		Post("/auth/register")

	if err := checkResponse(resp, err, "register"); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Login authenticates with phone and PIN
func (a *APIClient) Login(phone, pin string) (*models.User, error) {
	var result models.AuthResponse
	resp, err := a.client.R().
		SetBody(models.LoginRequest{Phone: phone, PIN: pin}).
		SetResult(&result).
		Post("/auth/login")

	if err := checkResponse(resp, err, "login"); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Transactions fetches the user's most recent transactions
func (a *APIClient) Transactions(userID string, limit int) ([]*models.Transaction, error) {
	var result models.TransactionsResponse
	resp, err := a.client.R().
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(&result).
		Get(fmt.Sprintf("/user/%s/transactions", userID))

	if err := checkResponse(resp, err, "fetch transactions"); err != nil {
		return nil, err
	}
	return result.Transactions, nil
}

// Chat sends a message to the assistant
func (a *APIClient) Chat(message, userID, sessionID string) (*models.ChatResponse, error) {
	var result models.ChatResponse
	resp, err := a.client.R().
		SetBody(models.ChatRequest{Message: message, UserID: userID, SessionID: sessionID}).
		SetResult(&result).
		Post("/chat")

	if err := checkResponse(resp, err, "chat"); err != nil {
		return nil, err
	}
	return &result, nil
}

func checkResponse(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("failed to %s: API error %d", action, resp.StatusCode())
	}
	return nil
}
