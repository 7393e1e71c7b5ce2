// Package wallet implements the e-wallet: balance reads, deposits,
// payments and the transaction ledger. Every balance change appends a
// ledger entry carrying a post-event balance snapshot, and payments also
// create an order row. All writes for one operation commit atomically
// under a row lock on the wallet, so the invariant
// balance == sum(deposits) - sum(debits) holds even under concurrent
// requests from the same user.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"smartshop/internal/models"
	"smartshop/internal/repositories"

	"github.com/sirupsen/logrus"
)

const (
	// PaymentMethodWallet tags debit transactions and orders paid from
	// the wallet balance.
	PaymentMethodWallet = "E-Wallet"
	// PaymentMethodCard tags deposits funded by a stored card.
	PaymentMethodCard = "Credit Card"

	historyLimit = 50
)

type Service interface {
	// Balance returns the wallet balance, defaulting to 0.00 when no
	// wallet row exists yet.
	Balance(ctx context.Context, userID uint) (float64, error)
	// Deposit adds amount to the wallet, creating the wallet if missing,
	// and appends a deposit ledger entry. Returns the new balance.
	Deposit(ctx context.Context, userID uint, amount float64) (float64, error)
	// Pay debits amount, appends a debit ledger entry and creates an
	// order, all in one database transaction. Returns the new balance or
	// an *InsufficientFundsError carrying the current balance.
	Pay(ctx context.Context, userID uint, amount float64, description string) (float64, error)
	// Transactions returns the most recent ledger entries, newest first.
	Transactions(ctx context.Context, userID uint) ([]models.Transaction, error)
}

type service struct {
	repo repositories.WalletRepository
	log  *logrus.Logger
}

func NewService(repo repositories.WalletRepository, log *logrus.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, log: log}
}

func (s *service) Balance(_ context.Context, userID uint) (float64, error) {
	w, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return w.Balance, nil
}

func (s *service) Deposit(_ context.Context, userID uint, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance float64
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := tx.GetByUserIDForUpdate(userID)
		switch {
		case errors.Is(err, repositories.ErrWalletNotFound):
			// Normally registration created the wallet; tolerate a
			// missing row instead of erroring.
			w = &models.Wallet{UserID: userID, Balance: amount}
			if err := tx.Create(w); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			w.Balance += amount
			if err := tx.Update(w); err != nil {
				return err
			}
		}
		newBalance = w.Balance

		return tx.CreateTransaction(&models.Transaction{
			UserID:        userID,
			Type:          models.TransactionTypeDeposit,
			Amount:        amount,
			Description:   "Deposit to wallet",
			PaymentMethod: PaymentMethodCard,
			Status:        models.TransactionStatusSuccess,
			BalanceAfter:  newBalance,
		})
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("deposit failed")
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"amount":      amount,
		"new_balance": newBalance,
	}).Info("wallet deposit")

	return newBalance, nil
}

func (s *service) Pay(_ context.Context, userID uint, amount float64, description string) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if description == "" {
		description = "Purchase"
	}

	var newBalance float64
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := tx.GetByUserIDForUpdate(userID)
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return &InsufficientFundsError{CurrentBalance: 0}
		}
		if err != nil {
			return err
		}

		if w.Balance < amount {
			return &InsufficientFundsError{CurrentBalance: w.Balance}
		}

		w.Balance -= amount
		if err := tx.Update(w); err != nil {
			return err
		}
		newBalance = w.Balance

		if err := tx.CreateTransaction(&models.Transaction{
			UserID:        userID,
			Type:          models.TransactionTypeDebit,
			Amount:        amount,
			Description:   description,
			PaymentMethod: PaymentMethodWallet,
			Status:        models.TransactionStatusSuccess,
			BalanceAfter:  newBalance,
		}); err != nil {
			return err
		}

		return tx.CreateOrder(&models.Order{
			UserID:        userID,
			TotalAmount:   amount,
			PaymentMethod: PaymentMethodWallet,
			OrderStatus:   models.OrderStatusProcessing,
		})
	})
	if err != nil {
		var insufficient *InsufficientFundsError
		if !errors.As(err, &insufficient) {
			s.log.WithError(err).WithField("user_id", userID).Error("payment failed")
		}
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"amount":      amount,
		"new_balance": newBalance,
	}).Info("wallet payment")

	return newBalance, nil
}

func (s *service) Transactions(_ context.Context, userID uint) ([]models.Transaction, error) {
	txns, err := s.repo.RecentTransactions(userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txns, nil
}
