package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nairsand/voicebank/internal/models"
)

// DatabaseStore persists data in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations

func (d *DatabaseStore) CreateUser(reg *models.UserRegistration) (*models.User, error) {
	phone := models.NormalizePhone(reg.Phone)

	var count int64
	d.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("user already exists")
	}

	user := &models.User{
		Name:  reg.Name,
		Phone: phone,
		PIN:   reg.PIN,
	}
	if err := d.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *DatabaseStore) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

func (d *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("phone = ?", models.NormalizePhone(phone)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

func (d *DatabaseStore) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *DatabaseStore) CountUsers() (int64, error) {
	var count int64
	err := d.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Transaction operations

func (d *DatabaseStore) CreateTransaction(txn *models.Transaction) (*models.Transaction, error) {
	if err := d.db.Create(txn).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

func (d *DatabaseStore) GetTransactionsByUser(userID string, limit int) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	query := d.db.Where("user_id = ?", userID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// OTP operations

func (d *DatabaseStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	if err := d.db.Create(otp).Error; err != nil {
		return nil, fmt.Errorf("failed to create otp: %w", err)
	}
	return otp, nil
}

func (d *DatabaseStore) GetActiveOTP(phone, purpose string) (*models.OTP, error) {
	var otp models.OTP
	err := d.db.Where("phone = ? AND purpose = ? AND is_used = ?",
		models.NormalizePhone(phone), purpose, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, fmt.Errorf("otp not found")
	}
	return &otp, nil
}

func (d *DatabaseStore) UpdateOTP(otp *models.OTP) error {
	return d.db.Save(otp).Error
}

func (d *DatabaseStore) DeleteExpiredOTPs() error {
	return d.db.Unscoped().
		Where("expires_at < ? OR is_used = ?", time.Now(), true).
		Delete(&models.OTP{}).Error
}
