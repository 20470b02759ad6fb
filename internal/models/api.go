package models

// Request and response bodies shared by the API server and the terminal client.

type OTPRequest struct {
	Phone string `json:"phone"`
}

type OTPVerifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

type TransferRequest struct {
	ToPhone string `json:"to_phone"`
	Amount  int64  `json:"amount"`
	UserID  string `json:"user_id"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	MockOTP string `json:"mock_otp,omitempty"` // only populated in mock delivery mode
}

type VerifyOTPResponse struct {
	Success    bool  `json:"success"`
	UserExists bool  `json:"user_exists"`
	User       *User `json:"user,omitempty"`
}

type AuthResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type TransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type TransferResponse struct {
	Success     bool         `json:"success"`
	NewBalance  int64        `json:"new_balance"`
	Transaction *Transaction `json:"transaction"`
}

type ChatResponse struct {
	Success     bool   `json:"success"`
	Response    string `json:"response"`
	UserBalance int64  `json:"user_balance"`
}
