package client

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/speech"
)

// Stage is the current step of the authentication/dashboard flow
type Stage string

const (
	StageAuth      Stage = "auth"
	StageVerifyOTP Stage = "verify-otp"
	StageRegister  Stage = "register"
	StageLogin     Stage = "login"
	StageDashboard Stage = "dashboard"
)

// FallbackReply is appended as the assistant's message when a chat call fails
const FallbackReply = "Sorry, I encountered an error. Please try again."

// transactionsShown bounds the dashboard transaction list
const transactionsShown = 5

// Notifier surfaces transient notifications to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Controller owns the client session: the current stage, the signed-in user,
// the conversation log and the transaction list. All transitions are guarded
// by a mutex so a second submission cannot interleave with one in flight.
type Controller struct {
	mu     sync.Mutex
	api    *APIClient
	voice  speech.Synthesizer
	notify Notifier

	stage        Stage
	sessionID    string
	phone        string
	user         *models.User
	balance      int64
	transcript   string
	pendingInput string
	messages     []models.ChatMessage
	transactions []*models.Transaction
}

// NewController creates a fresh session in the auth stage
func NewController(api *APIClient, voice speech.Synthesizer, notify Notifier) *Controller {
	if voice == nil {
		voice = speech.NoopSynthesizer{}
	}
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	return &Controller{
		api:       api,
		voice:     voice,
		notify:    notify,
		stage:     StageAuth,
		sessionID: fmt.Sprintf("session_%d", time.Now().Unix()),
	}
}

// SubmitPhone requests an OTP for the phone number and advances to
// verify-otp. Returns the mock code when the backend runs in mock delivery
// mode, for display in the demo UI.
func (c *Controller) SubmitPhone(phone string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", fmt.Errorf("phone number is required")
	}

	resp, err := c.api.SendOTP(phone)
	if err != nil {
		c.notify.Notify("Failed to send OTP. Please try again.")
		return "", err
	}

	c.phone = phone
	c.stage = StageVerifyOTP
	return resp.MockOTP, nil
}

// SubmitOTP verifies the code. Existing users continue to login, new users
// to register. On rejection the stage does not move, so the code can be
// retried.
func (c *Controller) SubmitOTP(otp string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.api.VerifyOTP(c.phone, otp)
	if err != nil || !resp.Success {
		c.notify.Notify("Invalid OTP. Please try again.")
		if err == nil {
			err = fmt.Errorf("OTP rejected")
		}
		return err
	}

	if resp.UserExists {
		c.stage = StageLogin
	} else {
		c.stage = StageRegister
	}
	return nil
}

// Register creates the account and enters the dashboard
func (c *Controller) Register(name, pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.api.Register(c.phone, name, pin)
	if err != nil {
		c.notify.Notify("Registration failed. Please try again.")
		return err
	}

	c.enterDashboard(user)
	_ = c.voice.Speak(fmt.Sprintf("Welcome to VoiceBank, %s! Your account is ready.", user.Name))
	return nil
}

// Login authenticates with the PIN and enters the dashboard
func (c *Controller) Login(pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.api.Login(c.phone, pin)
	if err != nil {
		c.notify.Notify("Login failed. Please check your PIN.")
		return err
	}

	c.enterDashboard(user)
	_ = c.voice.Speak(fmt.Sprintf("Welcome back, %s. Your balance is %d rupees.", user.Name, user.Balance))
	return nil
}

// enterDashboard must be called with the lock held
func (c *Controller) enterDashboard(user *models.User) {
	c.stage = StageDashboard
	c.user = user
	c.balance = user.Balance
	c.refreshTransactions()
}

// SendChat submits a message to the assistant. The user's message is appended
// immediately; the assistant's reply (or the fixed fallback on failure) is
// appended when the call resolves.
func (c *Controller) SendChat(text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("message is empty")
	}
	if c.user == nil {
		return "", fmt.Errorf("not signed in")
	}

	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	c.transcript = ""
	c.pendingInput = ""

	resp, err := c.api.Chat(text, c.user.UserID, c.sessionID)
	if err != nil {
		// The user's message stays in the log; the turn shows as answered
		// by the fallback line
		c.notify.Notify("Failed to reach the assistant.")
		c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Content: FallbackReply})
		return FallbackReply, err
	}

	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Content: resp.Response})
	c.balance = resp.UserBalance
	_ = c.voice.Speak(resp.Response)

	// Heuristic refresh: the backend gives no authoritative signal, so any
	// mention of transactions or transfers re-fetches the list
	lower := strings.ToLower(text)
	if strings.Contains(lower, "transaction") || strings.Contains(lower, "transfer") {
		c.refreshTransactions()
	}

	return resp.Response, nil
}

// refreshTransactions must be called with the lock held
func (c *Controller) refreshTransactions() {
	txns, err := c.api.Transactions(c.user.UserID, transactionsShown)
	if err != nil {
		c.notify.Notify("Failed to fetch transactions.")
		return
	}
	c.transactions = txns
}

// RefreshTransactions re-fetches the dashboard transaction list on demand
func (c *Controller) RefreshTransactions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return
	}
	c.refreshTransactions()
}

// SetTranscript mirrors the running speech transcript into the pending input,
// overwriting any prior pending text
func (c *Controller) SetTranscript(transcript string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = transcript
	c.pendingInput = transcript
}

// Logout discards the session state and returns to the auth stage
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.voice.Cancel()
	c.stage = StageAuth
	c.phone = ""
	c.user = nil
	c.balance = 0
	c.transcript = ""
	c.pendingInput = ""
	c.messages = nil
	c.transactions = nil
}

// Accessors

func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Controller) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Controller) Balance() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

func (c *Controller) PendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingInput
}

func (c *Controller) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Controller) Transactions() []*models.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}
