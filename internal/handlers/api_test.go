package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/routes"
	"github.com/nairsand/voicebank/internal/storage"
)

func newTestApp() (*fiber.App, storage.Store) {
	store := storage.NewMemoryStore()
	app := fiber.New()
	routes.SetupRoutes(app, store, nil) // nil SMS service = mock OTP mode
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp
}

// registerUser walks the OTP flow and creates an account, returning the user
func registerUser(t *testing.T, app *fiber.App, phone, name, pin string) *models.User {
	t.Helper()

	var sent models.SendOTPResponse
	resp := doJSON(t, app, http.MethodPost, "/api/auth/send-otp", models.OTPRequest{Phone: phone}, &sent)
	if resp.StatusCode != http.StatusOK || sent.MockOTP == "" {
		t.Fatalf("send-otp failed: status=%d mock=%q", resp.StatusCode, sent.MockOTP)
	}

	var verified models.VerifyOTPResponse
	resp = doJSON(t, app, http.MethodPost, "/api/auth/verify-otp", models.OTPVerifyRequest{Phone: phone, OTP: sent.MockOTP}, &verified)
	if resp.StatusCode != http.StatusOK || !verified.Success {
		t.Fatalf("verify-otp failed: status=%d", resp.StatusCode)
	}
	if verified.UserExists {
		t.Fatalf("expected a new user for %s", phone)
	}

	var registered models.AuthResponse
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", models.UserRegistration{Phone: phone, Name: name, PIN: pin}, &registered)
	if resp.StatusCode != http.StatusOK || registered.User == nil {
		t.Fatalf("register failed: status=%d", resp.StatusCode)
	}
	return registered.User
}

func TestAuthFlowNewUser(t *testing.T) {
	app, _ := newTestApp()

	user := registerUser(t, app, "9876543210", "Asha", "1234")
	if user.Name != "Asha" || user.Phone != "+919876543210" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Balance != models.OpeningBalance {
		t.Fatalf("expected opening balance, got %d", user.Balance)
	}
}

func TestVerifyOTPExistingUser(t *testing.T) {
	app, _ := newTestApp()
	registerUser(t, app, "9876543210", "Asha", "1234")

	var sent models.SendOTPResponse
	doJSON(t, app, http.MethodPost, "/api/auth/send-otp", models.OTPRequest{Phone: "9876543210"}, &sent)

	var verified models.VerifyOTPResponse
	doJSON(t, app, http.MethodPost, "/api/auth/verify-otp", models.OTPVerifyRequest{Phone: "9876543210", OTP: sent.MockOTP}, &verified)

	if !verified.Success || !verified.UserExists {
		t.Fatalf("expected user_exists=true, got %+v", verified)
	}
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	app, _ := newTestApp()

	doJSON(t, app, http.MethodPost, "/api/auth/send-otp", models.OTPRequest{Phone: "9876543210"}, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/verify-otp", models.OTPVerifyRequest{Phone: "9876543210", OTP: "000000"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp()
	user := registerUser(t, app, "9876543210", "Asha", "1234")

	var loggedIn models.AuthResponse
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", models.LoginRequest{Phone: "9876543210", PIN: "1234"}, &loggedIn)
	if resp.StatusCode != http.StatusOK || loggedIn.User.UserID != user.UserID {
		t.Fatalf("login failed: status=%d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", models.LoginRequest{Phone: "9876543210", PIN: "9999"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong PIN, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	app, _ := newTestApp()
	registerUser(t, app, "9876543210", "Asha", "1234")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", models.UserRegistration{Phone: "9876543210", Name: "Ravi", PIN: "5678"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate phone, got %d", resp.StatusCode)
	}
}

func TestTransferEndpointAndTransactionList(t *testing.T) {
	app, _ := newTestApp()
	sender := registerUser(t, app, "9876543210", "Asha", "1234")
	registerUser(t, app, "9123456789", "Ravi", "5678")

	var transferred models.TransferResponse
	resp := doJSON(t, app, http.MethodPost, "/api/transfer", models.TransferRequest{
		UserID:  sender.UserID,
		ToPhone: "9123456789",
		Amount:  5000,
	}, &transferred)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("transfer failed: status=%d", resp.StatusCode)
	}
	if transferred.NewBalance != models.OpeningBalance-5000 {
		t.Fatalf("expected new balance %d, got %d", models.OpeningBalance-5000, transferred.NewBalance)
	}

	var balance models.BalanceResponse
	doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/user/%s/balance", sender.UserID), nil, &balance)
	if balance.Balance != models.OpeningBalance-5000 {
		t.Fatalf("expected balance endpoint to agree, got %d", balance.Balance)
	}

	var txns models.TransactionsResponse
	doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/user/%s/transactions?limit=5", sender.UserID), nil, &txns)
	if len(txns.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns.Transactions))
	}
	if txns.Transactions[0].Type != models.TransactionTransferOut {
		t.Fatalf("expected transfer_out, got %s", txns.Transactions[0].Type)
	}
}

func TestTransferEndpointRejectsInsufficientBalance(t *testing.T) {
	app, _ := newTestApp()
	sender := registerUser(t, app, "9876543210", "Asha", "1234")
	registerUser(t, app, "9123456789", "Ravi", "5678")

	resp := doJSON(t, app, http.MethodPost, "/api/transfer", models.TransferRequest{
		UserID:  sender.UserID,
		ToPhone: "9123456789",
		Amount:  models.OpeningBalance + 1,
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatEndpoint(t *testing.T) {
	app, _ := newTestApp()
	user := registerUser(t, app, "9876543210", "Asha", "1234")

	var chat models.ChatResponse
	resp := doJSON(t, app, http.MethodPost, "/api/chat", models.ChatRequest{
		Message:   "What is my balance?",
		UserID:    user.UserID,
		SessionID: "session_test",
	}, &chat)
	if resp.StatusCode != http.StatusOK || !chat.Success {
		t.Fatalf("chat failed: status=%d", resp.StatusCode)
	}
	if chat.UserBalance != models.OpeningBalance {
		t.Fatalf("expected balance alongside reply, got %d", chat.UserBalance)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/chat", models.ChatRequest{
		Message:   "hello",
		UserID:    "nobody",
		SessionID: "session_test",
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.StatusCode)
	}
}

func TestChatTransferUpdatesReportedBalance(t *testing.T) {
	app, _ := newTestApp()
	user := registerUser(t, app, "9876543210", "Asha", "1234")
	registerUser(t, app, "9123456789", "Ravi", "5678")

	var chat models.ChatResponse
	doJSON(t, app, http.MethodPost, "/api/chat", models.ChatRequest{
		Message:   "transfer 500 to 9123456789",
		UserID:    user.UserID,
		SessionID: "session_test",
	}, &chat)

	if chat.UserBalance != models.OpeningBalance-500 {
		t.Fatalf("expected post-transfer balance %d, got %d", models.OpeningBalance-500, chat.UserBalance)
	}
}
