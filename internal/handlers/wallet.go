package handlers

import (
	"errors"

	"smartshop/internal/middleware"
	"smartshop/internal/services/wallet"
	"smartshop/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.walletService.Balance(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.ServerError(c, "Failed to get balance")
	}
	return c.JSON(fiber.Map{"balance": balance})
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	var input struct {
		Amount float64 `json:"amount"`
		CardID *uint   `json:"card_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newBalance, err := h.walletService.Deposit(c.Context(), middleware.UserID(c), input.Amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, "Invalid amount")
		}
		return response.ServerError(c, "Deposit failed")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Amount deposited successfully",
		"new_balance": newBalance,
	})
}

func (h *WalletHandler) Pay(c *fiber.Ctx) error {
	var input struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newBalance, err := h.walletService.Pay(c.Context(), middleware.UserID(c), input.Amount, input.Description)
	if err != nil {
		var insufficient *wallet.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":           "Insufficient balance",
				"current_balance": insufficient.CurrentBalance,
			})
		}
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, "Invalid amount")
		}
		return response.ServerError(c, "Payment failed")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Payment successful",
		"new_balance": newBalance,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	txns, err := h.walletService.Transactions(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.ServerError(c, "Failed to retrieve transactions")
	}

	out := make([]fiber.Map, len(txns))
	for i, t := range txns {
		out[i] = fiber.Map{
			"id":               t.ID,
			"user_id":          t.UserID,
			"transaction_type": t.Type,
			"amount":           t.Amount,
			"description":      t.Description,
			"payment_method":   t.PaymentMethod,
			"status":           t.Status,
			"balance_after":    t.BalanceAfter,
			"created_at":       t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return c.JSON(out)
}
