package storage

import (
	"github.com/nairsand/voicebank/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(reg *models.UserRegistration) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UpdateUser(user *models.User) error
	CountUsers() (int64, error)

	// Transaction operations
	CreateTransaction(txn *models.Transaction) (*models.Transaction, error)
	GetTransactionsByUser(userID string, limit int) ([]*models.Transaction, error)

	// OTP operations
	CreateOTP(otp *models.OTP) (*models.OTP, error)
	GetActiveOTP(phone, purpose string) (*models.OTP, error)
	UpdateOTP(otp *models.OTP) error
	DeleteExpiredOTPs() error
}
