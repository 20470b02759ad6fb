package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nairsand/voicebank/internal/models"
)

// MemoryStore holds all data in memory for development and tests
type MemoryStore struct {
	users        map[string]*models.User // keyed by UserID
	phoneIndex   map[string]string       // phone -> UserID
	transactions map[string][]*models.Transaction
	otps         []*models.OTP

	// Mutexes for thread safety
	userMu sync.RWMutex
	txnMu  sync.RWMutex
	otpMu  sync.RWMutex

	otpCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		phoneIndex:   make(map[string]string),
		transactions: make(map[string][]*models.Transaction),
	}
}

// User operations

func (m *MemoryStore) CreateUser(reg *models.UserRegistration) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	phone := models.NormalizePhone(reg.Phone)
	if _, exists := m.phoneIndex[phone]; exists {
		return nil, fmt.Errorf("user already exists")
	}

	user := &models.User{
		UserID:  uuid.NewString(),
		Name:    reg.Name,
		Phone:   phone,
		PIN:     reg.PIN,
		Balance: models.OpeningBalance,
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	m.users[user.UserID] = user
	m.phoneIndex[phone] = user.UserID
	return copyUser(user), nil
}

func (m *MemoryStore) GetUserByID(userID string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[userID]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return copyUser(user), nil
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	userID, exists := m.phoneIndex[models.NormalizePhone(phone)]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return copyUser(m.users[userID]), nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.UserID]; !exists {
		return fmt.Errorf("user not found")
	}
	stored := copyUser(user)
	stored.UpdatedAt = time.Now()
	m.users[stored.UserID] = stored
	return nil
}

// copyUser snapshots a record so callers never hold a pointer into the store
func copyUser(user *models.User) *models.User {
	c := *user
	return &c
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	return int64(len(m.users)), nil
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(txn *models.Transaction) (*models.Transaction, error) {
	m.txnMu.Lock()
	defer m.txnMu.Unlock()

	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now()
	}
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = time.Now()

	m.transactions[txn.UserID] = append(m.transactions[txn.UserID], txn)
	return txn, nil
}

func (m *MemoryStore) GetTransactionsByUser(userID string, limit int) ([]*models.Transaction, error) {
	m.txnMu.RLock()
	defer m.txnMu.RUnlock()

	all := m.transactions[userID]
	result := make([]*models.Transaction, len(all))
	copy(result, all)

	// Most recent first
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// OTP operations

func (m *MemoryStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	m.otpCounter++
	otp.ID = m.otpCounter
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = time.Now()

	m.otps = append(m.otps, otp)
	return otp, nil
}

func (m *MemoryStore) GetActiveOTP(phone, purpose string) (*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	phone = models.NormalizePhone(phone)

	// Scan backwards so the most recently issued code wins
	for i := len(m.otps) - 1; i >= 0; i-- {
		otp := m.otps[i]
		if otp.Phone == phone && otp.Purpose == purpose && !otp.IsUsed {
			return otp, nil
		}
	}
	return nil, fmt.Errorf("otp not found")
}

func (m *MemoryStore) UpdateOTP(otp *models.OTP) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	for i, existing := range m.otps {
		if existing.ID == otp.ID {
			otp.UpdatedAt = time.Now()
			m.otps[i] = otp
			return nil
		}
	}
	return fmt.Errorf("otp not found")
}

func (m *MemoryStore) DeleteExpiredOTPs() error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	kept := m.otps[:0]
	for _, otp := range m.otps {
		if time.Now().Before(otp.ExpiresAt) && !otp.IsUsed {
			kept = append(kept, otp)
		}
	}
	m.otps = kept
	return nil
}
