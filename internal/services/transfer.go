package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/nairsand/voicebank/internal/models"
	"github.com/nairsand/voicebank/internal/storage"
)

// TransferService moves money between accounts and records the ledger pair
type TransferService struct {
	store storage.Store
	mu    sync.Mutex // serializes balance updates across concurrent transfers
}

// NewTransferService creates a new transfer service
func NewTransferService(store storage.Store) *TransferService {
	return &TransferService{store: store}
}

// Transfer debits the sender and credits the receiver, creating a
// transfer_out/transfer_in transaction pair. Returns the sender's transaction
// and new balance.
func (t *TransferService) Transfer(fromUserID, toPhone string, amount int64) (*models.Transaction, int64, error) {
	if amount <= 0 {
		return nil, 0, fmt.Errorf("amount must be positive")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	sender, err := t.store.GetUserByID(fromUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("sender not found")
	}

	if sender.Balance < amount {
		return nil, 0, fmt.Errorf("insufficient balance")
	}

	receiver, err := t.store.GetUserByPhone(toPhone)
	if err != nil {
		return nil, 0, fmt.Errorf("receiver not found")
	}

	if receiver.UserID == sender.UserID {
		return nil, 0, fmt.Errorf("cannot transfer to yourself")
	}

	// Update balances
	sender.Balance -= amount
	receiver.Balance += amount

	if err := t.store.UpdateUser(sender); err != nil {
		return nil, 0, fmt.Errorf("failed to update sender: %w", err)
	}
	if err := t.store.UpdateUser(receiver); err != nil {
		return nil, 0, fmt.Errorf("failed to update receiver: %w", err)
	}

	// Create the ledger pair
	senderTxn, err := t.store.CreateTransaction(&models.Transaction{
		UserID:       sender.UserID,
		Type:         models.TransactionTransferOut,
		Amount:       amount,
		Description:  fmt.Sprintf("Transfer to %s", receiver.Phone),
		BalanceAfter: sender.Balance,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to record transaction: %w", err)
	}

	_, err = t.store.CreateTransaction(&models.Transaction{
		UserID:       receiver.UserID,
		Type:         models.TransactionTransferIn,
		Amount:       amount,
		Description:  fmt.Sprintf("Transfer from %s", sender.Phone),
		BalanceAfter: receiver.Balance,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to record transaction: %w", err)
	}

	log.Printf("💸 Transfer of ₹%d from %s to %s completed", amount, sender.Phone, receiver.Phone)
	return senderTxn, sender.Balance, nil
}
