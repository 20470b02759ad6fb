package services

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
)

// AssistantService answers banking questions for the chat endpoint.
// It routes on intent keywords - checking balance, listing transactions and
// executing transfers - and falls back to a help message.
type AssistantService struct {
	store    storage.Store
	transfer *TransferService
}

// NewAssistantService creates a new assistant service
func NewAssistantService(store storage.Store, transfer *TransferService) *AssistantService {
	return &AssistantService{
		store:    store,
		transfer: transfer,
	}
}

// Matches "transfer 500 to 9876543210", "send ₹500 to +919876543210" etc.
var transferPattern = regexp.MustCompile(`(?i)(?:transfer|send)\s+(?:₹|rs\.?\s*)?(\d+)\s+(?:rupees\s+)?to\s+(\+?\d{10,13})`)

// Reply produces the assistant's response for a user message
func (a *AssistantService) Reply(user *models.User, message string) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "I didn't catch that. Could you say it again?", nil
	}

	log.Printf("🤖 Assistant: %s asked: %q", user.Name, message)

	// Transfer command takes priority over history keywords, since the
	// message usually contains "transfer" either way
	if match := transferPattern.FindStringSubmatch(message); match != nil {
		return a.handleTransfer(user, match)
	}

	switch {
	case containsAny(msg, "transaction", "transfers", "history", "statement", "recent activity"):
		return a.handleTransactions(user)

	case containsAny(msg, "balance", "how much", "money do i have"):
		return fmt.Sprintf("Your balance is ₹%d.", user.Balance), nil

	case containsAny(msg, "hello", "hi ", "namaste", "hey"), msg == "hi":
		return fmt.Sprintf("Hello %s! I can check your balance, show recent transactions, or transfer money. What would you like to do?", user.Name), nil

	case containsAny(msg, "thank", "thanks"):
		return "You're welcome! Anything else I can help with?", nil
	}

	return "I can help you check your balance, view recent transactions, or transfer money. " +
		"For example, say \"what is my balance\" or \"transfer 500 to 9876543210\".", nil
}

func (a *AssistantService) handleTransfer(user *models.User, match []string) (string, error) {
	amount, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return "I couldn't read that amount. Please try again.", nil
	}

	_, newBalance, err := a.transfer.Transfer(user.UserID, match[2], amount)
	if err != nil {
		return fmt.Sprintf("I couldn't complete the transfer: %s.", err.Error()), nil
	}

	return fmt.Sprintf("Done! I've transferred ₹%d to %s. Your new balance is ₹%d.",
		amount, models.NormalizePhone(match[2]), newBalance), nil
}

func (a *AssistantService) handleTransactions(user *models.User) (string, error) {
	txns, err := a.store.GetTransactionsByUser(user.UserID, 5)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transactions: %w", err)
	}

	if len(txns) == 0 {
		return "You have no transactions yet.", nil
	}

	var b strings.Builder
	b.WriteString("Here are your recent transactions: ")
	for i, txn := range txns {
		if i > 0 {
			b.WriteString("; ")
		}
		if txn.Type == models.TransactionTransferOut {
			fmt.Fprintf(&b, "₹%d sent, %s", txn.Amount, txn.Description)
		} else {
			fmt.Fprintf(&b, "₹%d received, %s", txn.Amount, txn.Description)
		}
	}
	b.WriteString(".")
	return b.String(), nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
