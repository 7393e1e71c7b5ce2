package repositories

import (
	"errors"
	"fmt"

	"smartshop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository handles wallet rows, the transaction ledger and order
// creation. Balance-changing operations run inside ExecuteInTransaction
// with a row lock on the wallet so concurrent requests from the same user
// cannot lose updates.
type WalletRepository interface {
	GetByUserID(userID uint) (*models.Wallet, error)
	// GetByUserIDForUpdate locks the wallet row (SELECT ... FOR UPDATE)
	// for the remainder of the surrounding transaction.
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	Create(wallet *models.Wallet) error
	Update(wallet *models.Wallet) error
	CreateTransaction(txn *models.Transaction) error
	RecentTransactions(userID uint, limit int) ([]models.Transaction, error)
	CreateOrder(order *models.Order) error
	ExecuteInTransaction(fn func(WalletRepository) error) error
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) RecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txns, nil
}

func (r *walletRepository) CreateOrder(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
