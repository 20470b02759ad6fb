package services

import (
	"testing"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
)

func setupTwoUsers(t *testing.T) (storage.Store, *models.User, *models.User) {
	t.Helper()
	store := storage.NewMemoryStore()

	sender, err := store.CreateUser(&models.UserRegistration{Phone: "9876543210", Name: "Asha", PIN: "1234"})
	if err != nil {
		t.Fatalf("create sender: %v", err)
	}
	receiver, err := store.CreateUser(&models.UserRegistration{Phone: "9123456789", Name: "Ravi", PIN: "5678"})
	if err != nil {
		t.Fatalf("create receiver: %v", err)
	}
	return store, sender, receiver
}

func TestTransferCreatesLedgerPair(t *testing.T) {
	store, sender, receiver := setupTwoUsers(t)
	svc := NewTransferService(store)

	txn, newBalance, err := svc.Transfer(sender.UserID, "9123456789", 5000)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	if newBalance != models.OpeningBalance-5000 {
		t.Fatalf("expected sender balance %d, got %d", models.OpeningBalance-5000, newBalance)
	}
	if txn.Type != models.TransactionTransferOut || txn.Amount != 5000 {
		t.Fatalf("unexpected sender transaction: %+v", txn)
	}
	if txn.BalanceAfter != newBalance {
		t.Fatalf("expected balance_after %d, got %d", newBalance, txn.BalanceAfter)
	}

	got, err := store.GetUserByID(receiver.UserID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Balance != models.OpeningBalance+5000 {
		t.Fatalf("expected receiver balance %d, got %d", models.OpeningBalance+5000, got.Balance)
	}

	in, err := store.GetTransactionsByUser(receiver.UserID, 5)
	if err != nil {
		t.Fatalf("GetTransactionsByUser: %v", err)
	}
	if len(in) != 1 || in[0].Type != models.TransactionTransferIn {
		t.Fatalf("expected one transfer_in entry for receiver, got %+v", in)
	}
	if in[0].BalanceAfter != models.OpeningBalance+5000 {
		t.Fatalf("expected receiver balance_after %d, got %d", models.OpeningBalance+5000, in[0].BalanceAfter)
	}
}

func TestTransferRejectsInsufficientBalance(t *testing.T) {
	store, sender, _ := setupTwoUsers(t)
	svc := NewTransferService(store)

	if _, _, err := svc.Transfer(sender.UserID, "9123456789", models.OpeningBalance+1); err == nil {
		t.Fatal("expected insufficient balance error")
	}

	// Nothing should have moved
	got, _ := store.GetUserByID(sender.UserID)
	if got.Balance != models.OpeningBalance {
		t.Fatalf("expected untouched balance, got %d", got.Balance)
	}
}

func TestTransferRejectsUnknownReceiver(t *testing.T) {
	store, sender, _ := setupTwoUsers(t)
	svc := NewTransferService(store)

	if _, _, err := svc.Transfer(sender.UserID, "9999999999", 100); err == nil {
		t.Fatal("expected unknown receiver error")
	}
}

func TestTransferRejectsSelfAndNonPositiveAmounts(t *testing.T) {
	store, sender, _ := setupTwoUsers(t)
	svc := NewTransferService(store)

	if _, _, err := svc.Transfer(sender.UserID, sender.Phone, 100); err == nil {
		t.Fatal("expected self-transfer to be rejected")
	}
	if _, _, err := svc.Transfer(sender.UserID, "9123456789", 0); err == nil {
		t.Fatal("expected zero amount to be rejected")
	}
	if _, _, err := svc.Transfer(sender.UserID, "9123456789", -50); err == nil {
		t.Fatal("expected negative amount to be rejected")
	}
}
