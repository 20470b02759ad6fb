package services

import (
	"strings"
	"testing"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
)

func newAssistant(t *testing.T) (*AssistantService, storage.Store, *models.User, *models.User) {
	t.Helper()
	store, sender, receiver := setupTwoUsers(t)
	transfer := NewTransferService(store)
	return NewAssistantService(store, transfer), store, sender, receiver
}

func TestAssistantAnswersBalance(t *testing.T) {
	assistant, _, user, _ := newAssistant(t)

	reply, err := assistant.Reply(user, "What is my balance?")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "₹50000") {
		t.Fatalf("expected balance in reply, got %q", reply)
	}
}

func TestAssistantListsTransactions(t *testing.T) {
	assistant, store, user, _ := newAssistant(t)

	if _, err := store.CreateTransaction(&models.Transaction{
		UserID:      user.UserID,
		Type:        models.TransactionTransferIn,
		Amount:      1200,
		Description: "Transfer from +919123456789",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	reply, err := assistant.Reply(user, "Show my recent transactions")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "₹1200 received") {
		t.Fatalf("expected transaction summary, got %q", reply)
	}
}

func TestAssistantReportsEmptyHistory(t *testing.T) {
	assistant, _, user, _ := newAssistant(t)

	reply, err := assistant.Reply(user, "show my transfers")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "no transactions") {
		t.Fatalf("expected empty history message, got %q", reply)
	}
}

func TestAssistantExecutesTransfer(t *testing.T) {
	assistant, store, user, receiver := newAssistant(t)

	reply, err := assistant.Reply(user, "transfer 500 to 9123456789")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "₹500") || !strings.Contains(reply, "new balance is ₹49500") {
		t.Fatalf("expected transfer confirmation, got %q", reply)
	}

	got, _ := store.GetUserByID(receiver.UserID)
	if got.Balance != models.OpeningBalance+500 {
		t.Fatalf("expected receiver credited, balance %d", got.Balance)
	}
}

func TestAssistantReportsFailedTransfer(t *testing.T) {
	assistant, _, user, _ := newAssistant(t)

	reply, err := assistant.Reply(user, "transfer 99999999 to 9123456789")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "insufficient balance") {
		t.Fatalf("expected failure explanation, got %q", reply)
	}
}

func TestAssistantFallsBackToHelp(t *testing.T) {
	assistant, _, user, _ := newAssistant(t)

	reply, err := assistant.Reply(user, "what's the weather like?")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if !strings.Contains(reply, "balance") || !strings.Contains(reply, "transfer") {
		t.Fatalf("expected help text, got %q", reply)
	}
}
